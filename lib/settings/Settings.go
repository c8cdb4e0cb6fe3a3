package settings

type DBSettings struct {
	Filename string
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

type Settings struct {
	Title      string
	IP         string
	Port       string
	LogLevel   string
	DBType     IDBType
	DBSettings DBSettings

	// DefaultColor is applied when neither the caller nor the property
	// supplies one.
	DefaultColor string
}

// viper key constants
const (
	Title              = "title"
	IP                 = "ip"
	Port               = "port"
	LogLevel           = "logLevel"
	DBType             = "dbType"
	DBSettingsFilename = "dbSettings.filename"
	DBSettingsHost     = "dbSettings.host"
	DBSettingsPort     = "dbSettings.port"
	DBSettingsDatabase = "dbSettings.database"
	DBSettingsUser     = "dbSettings.user"
	DBSettingsPassword = "dbSettings.password"
	DefaultColor       = "defaultColor"
)
