package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// filterArgs holds the raw filter values as typed by the user.
type filterArgs struct {
	agency     string
	gender     string
	reason     string
	analyst    string
	month      string
	uploadedBy string
	lane       string
	bank       string
	band       string
	from       string
	to         string
}

func bindFilterFlags(cmd *cobra.Command, fa *filterArgs) {
	f := cmd.Flags()
	f.StringVar(&fa.agency, "agency", "", `Agency name, "*" for all; quote a value to match it literally`)
	f.StringVar(&fa.gender, "gender", "", "Gender")
	f.StringVar(&fa.reason, "reason", "", "Adjustment reason")
	f.StringVar(&fa.analyst, "analyst", "", "Analyst")
	f.StringVar(&fa.month, "month", "", "Payroll month")
	f.StringVar(&fa.uploadedBy, "uploaded-by", "", "Uploader")
	f.StringVar(&fa.lane, "lane", "", "Bank lane: LRD or USD")
	f.StringVar(&fa.bank, "bank", "", "Bank name within --lane")
	f.StringVar(&fa.band, "band", "", "Salary band, e.g. 1000-2000")
	f.StringVar(&fa.from, "from", "", "First upload day, "+dateLayout)
	f.StringVar(&fa.to, "to", "", "Last upload day, "+dateLayout)
}

func (fa *filterArgs) field(key string) *string {
	switch strings.ToLower(strings.ReplaceAll(key, "-", "_")) {
	case "agency":
		return &fa.agency
	case "gender":
		return &fa.gender
	case "reason":
		return &fa.reason
	case "analyst":
		return &fa.analyst
	case "month", "payroll_month":
		return &fa.month
	case "uploaded_by":
		return &fa.uploadedBy
	case "lane", "bank_lane":
		return &fa.lane
	case "bank":
		return &fa.bank
	case "band", "salary_band":
		return &fa.band
	case "from":
		return &fa.from
	case "to":
		return &fa.to
	}
	return nil
}

// parseFilterArgs reads key=value tokens into a FilterSpec.
func parseFilterArgs(args []string) (models.FilterSpec, error) {
	var fa filterArgs
	if err := fa.apply(args); err != nil {
		return models.FilterSpec{}, err
	}
	return fa.spec()
}

// apply sets the values named by key=value tokens. A token without '=' continues
// the previous value, so "agency=Ministry of Health" survives whitespace splitting.
func (fa *filterArgs) apply(args []string) error {
	var last *string
	for _, tok := range args {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			if last == nil {
				return fmt.Errorf("expected key=value, got %q", tok)
			}
			*last += " " + tok
			continue
		}
		dst := fa.field(key)
		if dst == nil {
			return fmt.Errorf("unknown filter %q", key)
		}
		*dst = value
		last = dst
	}
	return nil
}

func (fa filterArgs) spec() (models.FilterSpec, error) {
	spec := models.FilterSpec{
		Agency:       selection(fa.agency),
		Gender:       selection(fa.gender),
		Reason:       selection(fa.reason),
		Analyst:      selection(fa.analyst),
		PayrollMonth: selection(fa.month),
		UploadedBy:   selection(fa.uploadedBy),
		SalaryBand:   selection(strings.Replace(strings.TrimSpace(fa.band), "-", "–", 1)),
	}

	laneArg := strings.TrimSpace(fa.lane)
	if laneArg == anyValue {
		laneArg = ""
	}
	lane, err := models.ParseBankLane(laneArg)
	if err != nil {
		return models.FilterSpec{}, err
	}
	bank := selection(fa.bank)
	if lane == models.LaneAny && !bank.IsAny() {
		return models.FilterSpec{}, fmt.Errorf("bank %s needs a lane (LRD or USD)", bank)
	}
	spec.Bank = models.BankFilter{Lane: lane, Name: bank}

	from, to := strings.TrimSpace(fa.from), strings.TrimSpace(fa.to)
	switch {
	case from == "" && to == "":
	case from == "" || to == "":
		return models.FilterSpec{}, fmt.Errorf("from and to must be given together")
	default:
		start, err := time.Parse(dateLayout, from)
		if err != nil {
			return models.FilterSpec{}, fmt.Errorf("from: %w", err)
		}
		end, err := time.Parse(dateLayout, to)
		if err != nil {
			return models.FilterSpec{}, fmt.Errorf("to: %w", err)
		}
		spec.Dates = models.Between(start, end)
	}
	return spec, nil
}

// anyValue selects every value of a dimension. "All" is accepted as an alias.
const anyValue = "*"

// selection treats an empty value, "*" and "All" as unconstrained.
// A double-quoted value is taken literally, so agency="All" selects an agency named All.
func selection(v string) models.Selection {
	v = strings.TrimSpace(v)
	if n := len(v); n >= 2 && v[0] == '"' && v[n-1] == '"' {
		return models.Only(v[1 : n-1])
	}
	if v == "" || v == anyValue || strings.EqualFold(v, "all") {
		return models.Any()
	}
	return models.Only(v)
}
