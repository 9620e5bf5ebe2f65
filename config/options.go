package config

const (
	defaultLogFile           = "storyworld.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 5000
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/storyworld"
	defaultDriver            = "file"
	defaultMySQLDSN          = ""
	defaultMaxUploadSize     = 50
	defaultPageSize          = 12
	defaultMetricsCollector  = false
	defaultVersion           = "1.0.0"
)

var Opts *Options

// Why use mapstructure instead of json: viper unmarshals through mapstructure,
// json field tags are not recognized.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory holding the JSON collections and uploaded files
	Data string `mapstructure:"data"`
	// Driver selects the persistence backend: "file" or "mysql"
	Driver string `mapstructure:"driver"`
	// MySQLDSN is the DSN used when Driver is "mysql"
	MySQLDSN string `mapstructure:"mysql_dsn"`
	// MaxUploadSize is the maximum size of an upload, in MiB
	MaxUploadSize int64 `mapstructure:"max_upload_size"`
	// PageSize is the default number of books per catalog page
	PageSize int `mapstructure:"page_size"`
	// For metrics
	MetricsCollector bool   `mapstructure:"metrics_collector"`
	Version          string `mapstructure:"version"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		Driver:            defaultDriver,
		MySQLDSN:          defaultMySQLDSN,
		MaxUploadSize:     defaultMaxUploadSize,
		PageSize:          defaultPageSize,
		MetricsCollector:  defaultMetricsCollector,
		Version:           defaultVersion,
	}
	return Opts
}
