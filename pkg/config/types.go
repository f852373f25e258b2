package config

type Config struct {
	// Backend API settings (client side)
	API APIConfig `json:"api"`

	// Local session storage settings (client side)
	Storage StorageConfig `json:"storage"`

	// Logging settings
	Logging LoggingConfig `json:"logging"`

	// Dev server settings
	Server ServerConfig `json:"server"`

	// Dev server database settings
	Database DatabaseConfig `json:"database"`

	// Dev server security settings
	Security SecurityConfig `json:"security"`
}

// APIConfig holds the backend base URL and the fixed resource paths.
type APIConfig struct {
	BaseURL string `json:"base_url" default:"http://localhost:3001"`

	// URL path segments for backend resources.
	Paths PathConfig `json:"paths"`
}

// PathConfig enumerates the backend resource paths consumed by the client.
type PathConfig struct {
	AuthLogin    string `json:"auth_login" default:"/auth/login"`
	AuthRegister string `json:"auth_register" default:"/auth/register"`
	AuthMe       string `json:"auth_me" default:"/auth/me"`

	Trips        string `json:"trips" default:"/trips"`
	Destinations string `json:"destinations" default:"/destinations"`
	Itinerary    string `json:"itinerary" default:"/itinerary"`
	Bookings     string `json:"bookings" default:"/bookings"`
	Favorites    string `json:"favorites" default:"/favorites"`
}

// StorageConfig holds the directory for the durable session store.
type StorageConfig struct {
	Dir string `json:"dir"`
}

type ServerConfig struct {
	Host         string `json:"host" default:"localhost"`
	Port         int    `json:"port" default:"3001"`
	ReadTimeout  int    `json:"read_timeout" default:"30"`  // seconds
	WriteTimeout int    `json:"write_timeout" default:"30"` // seconds
	IdleTimeout  int    `json:"idle_timeout" default:"120"` // seconds
	GracefulStop int    `json:"graceful_stop" default:"30"` // seconds
}

type DatabaseConfig struct {
	Driver   string `json:"driver" default:"sqlite"` // sqlite, postgres
	Host     string `json:"host" default:"localhost"`
	Port     int    `json:"port" default:"5432"`
	Database string `json:"database" default:"tripdeck.db"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"ssl_mode" default:"disable"`

	// Connection pool settings
	MaxOpenConns    int `json:"max_open_conns" default:"25"`
	MaxIdleConns    int `json:"max_idle_conns" default:"5"`
	ConnMaxLifetime int `json:"conn_max_lifetime" default:"300"` // seconds
}

type SecurityConfig struct {
	JWTSecret          string `json:"jwt_secret"`
	JWTExpirationHours int    `json:"jwt_expiration_hours" default:"24"`

	// Rate limiting
	RateLimitEnabled   bool `json:"rate_limit_enabled" default:"true"`
	RateLimitPerMinute int  `json:"rate_limit_per_minute" default:"60"`
	RateLimitBurstSize int  `json:"rate_limit_burst_size" default:"10"`
}

type LoggingConfig struct {
	Level      string `json:"level" default:"info"`    // debug, info, warn, error
	Format     string `json:"format" default:"json"`   // json, text
	Output     string `json:"output" default:"stdout"` // stdout, file
	FilePath   string `json:"file_path" default:"logs/tripdeck.log"`
	MaxSize    int    `json:"max_size" default:"100"` // MB
	MaxBackups int    `json:"max_backups" default:"3"`
	MaxAge     int    `json:"max_age" default:"28"` // days
	Compress   bool   `json:"compress" default:"true"`
}
