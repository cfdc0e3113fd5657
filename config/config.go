package config

import (
	"errors"
	"io/fs"
	"log"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceCSV    = "csv"
	SourceSQL    = "sql"
	SourceSheets = "sheets"
)

type Config struct {
	Source string

	CSVPath string

	DbDsn    string
	SQLTable string

	SheetID               string
	SheetWorksheet        string
	GoogleCredentialsFile string

	TgToken string

	CacheTTL  time.Duration
	BandWidth int
	OutputDir string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the process-wide configuration, read once from .env and the environment.
func GetConfig() *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("error loading .env file: %v", err)
		}
		config = Load(viper.New())
	})
	return config
}

// Load reads the configuration from v with environment lookup and defaults applied.
func Load(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("PAYROLL_SOURCE", SourceCSV)
	v.SetDefault("PAYROLL_CSV_PATH", "transactions.csv")
	v.SetDefault("PAYROLL_SQL_TABLE", "transactions")
	v.SetDefault("SHEET_WORKSHEET", "transactions")
	v.SetDefault("CACHE_TTL", 300*time.Second)
	v.SetDefault("BAND_WIDTH", 1000)
	v.SetDefault("OUTPUT_DIR", "out")

	return &Config{
		Source:                v.GetString("PAYROLL_SOURCE"),
		CSVPath:               v.GetString("PAYROLL_CSV_PATH"),
		DbDsn:                 v.GetString("DB_DSN"),
		SQLTable:              v.GetString("PAYROLL_SQL_TABLE"),
		SheetID:               v.GetString("SHEET_ID"),
		SheetWorksheet:        v.GetString("SHEET_WORKSHEET"),
		GoogleCredentialsFile: v.GetString("GOOGLE_CREDENTIALS_FILE"),
		TgToken:               v.GetString("TG_TOKEN"),
		CacheTTL:              v.GetDuration("CACHE_TTL"),
		BandWidth:             v.GetInt("BAND_WIDTH"),
		OutputDir:             v.GetString("OUTPUT_DIR"),
	}
}
