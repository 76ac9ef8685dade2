package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	LRNumberFormat         string
	CapacityWarnPercent    float64
	StaleLoadingAfterHours int
}
