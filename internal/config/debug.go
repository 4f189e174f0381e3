package config

import "os"

func IsDebug() bool {
	switch os.Getenv("DEBUG") {
	case "1", "true", "yes":
		return true
	}
	return false
}
