package payroll

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/pivolan/go_utils"
)

const DefaultBandWidth = 1000

var AllowedBandWidths = []int{250, 500, 1000, 2000, 5000}

var allowedBandWidthNames = func() []string {
	names := make([]string, len(AllowedBandWidths))
	for i, w := range AllowedBandWidths {
		names[i] = strconv.Itoa(w)
	}
	return names
}()

func ValidBandWidth(width int) bool {
	return go_utils.InArray(strconv.Itoa(width), allowedBandWidthNames)
}

const (
	// maxDenseBands is the largest scale whose empty bins are still listed in Table.Bands.
	maxDenseBands = 500
	// maxBandIndex bounds the scale; salaries beyond it stay unbanded.
	maxBandIndex = 1 << 30
)

// bandScale splits [0, bins*width] into right-closed bins; the first bin also holds 0.
type bandScale struct {
	width int
	bins  int
}

func newBandScale(width int, max float64) bandScale {
	bins := 1
	if n := math.Ceil(max / float64(width)); n > maxBandIndex {
		bins = maxBandIndex
	} else if n > 1 {
		bins = int(n)
	}
	return bandScale{width: width, bins: bins}
}

func (s bandScale) dense() bool { return s.bins <= maxDenseBands }

// Labels lists every bin label; only call it on a dense scale.
func (s bandScale) Labels() []string {
	labels := make([]string, s.bins)
	for i := range labels {
		labels[i] = s.Label(i)
	}
	return labels
}

func (s bandScale) Label(i int) string {
	return bandLabel(i*s.width, s.width)
}

// occupiedLabels lists the labels of the given bins in bin order.
func (s bandScale) occupiedLabels(bins map[int]bool) []string {
	idx := make([]int, 0, len(bins))
	for i := range bins {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	labels := make([]string, len(idx))
	for j, i := range idx {
		labels[j] = s.Label(i)
	}
	return labels
}

// Index returns the bin of v, -1 when v is outside every bin.
func (s bandScale) Index(v float64) int {
	if v < 0 || math.IsNaN(v) {
		return -1
	}
	if v == 0 {
		return 0
	}
	n := math.Ceil(v / float64(s.width))
	if n > float64(s.bins) {
		return -1
	}
	return int(n) - 1
}

func bandLabel(lower, width int) string {
	return fmt.Sprintf("%d–%d", lower, lower+width)
}
