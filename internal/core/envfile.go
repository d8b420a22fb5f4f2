package core

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFileName is an optional dotenv file that may supply the DEVFLOW_*
// override variables without exporting them into every shell session.
// Process environment always wins; the project file beats the global one.
const envFileName = ".env.devflow"

// lookupOverride resolves an override variable from the process
// environment, then from ./.env.devflow, then from ~/.devflow/.env.devflow.
func lookupOverride(name string) (string, bool) {
	if val, ok := os.LookupEnv(name); ok {
		return val, true
	}

	if cwd, err := os.Getwd(); err == nil {
		if val, ok := readEnvFileVar(filepath.Join(cwd, envFileName), name); ok {
			return val, true
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if val, ok := readEnvFileVar(filepath.Join(home, devflowDirName, envFileName), name); ok {
			return val, true
		}
	}

	return "", false
}

// readEnvFileVar reads one variable from a dotenv file. A missing or
// unparseable file resolves nothing.
func readEnvFileVar(path, name string) (string, bool) {
	env, err := godotenv.Read(path)
	if err != nil {
		return "", false
	}
	val, ok := env[name]
	return val, ok
}
