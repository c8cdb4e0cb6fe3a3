package settings

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

func ReadConfig(jsonStr string) (*Settings, error) {
	viper.SetConfigName("settings")
	viper.SetConfigType("json")

	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("hilite")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if jsonStr != "" {
		if err := viper.ReadConfig(strings.NewReader(jsonStr)); err != nil {
			return nil, err
		}
	} else {
		if err := viper.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, err
			}
			// missing settings file is fine, defaults apply
		}
	}

	viper.SetDefault(Title, "Hilite")
	viper.SetDefault(IP, "0.0.0.0")
	viper.SetDefault(Port, "9002")
	viper.SetDefault(LogLevel, "info")
	viper.SetDefault(DefaultColor, "#fff1c7")

	viper.SetDefault(DBType, SQLITE)
	viper.SetDefault(DBSettingsFilename, "var/hilite.db")
	viper.SetDefault(DBSettingsHost, "localhost")
	viper.SetDefault(DBSettingsPort, 5432)
	viper.SetDefault(DBSettingsDatabase, "hilite")
	viper.SetDefault(DBSettingsUser, "hilite")
	viper.SetDefault(DBSettingsPassword, "")

	dbType, err := ParseDBType(viper.GetString(DBType))
	if err != nil {
		return nil, err
	}

	retrievedSettings := Settings{
		Title:        viper.GetString(Title),
		IP:           viper.GetString(IP),
		Port:         viper.GetString(Port),
		LogLevel:     viper.GetString(LogLevel),
		DBType:       dbType,
		DefaultColor: viper.GetString(DefaultColor),
		DBSettings: DBSettings{
			Filename: viper.GetString(DBSettingsFilename),
			Host:     viper.GetString(DBSettingsHost),
			Port:     viper.GetInt(DBSettingsPort),
			Database: viper.GetString(DBSettingsDatabase),
			User:     viper.GetString(DBSettingsUser),
			Password: viper.GetString(DBSettingsPassword),
		},
	}

	return &retrievedSettings, nil
}
