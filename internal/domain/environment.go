package domain

import (
	"fmt"
	"strings"
)

// Environment is a deployment target.
type Environment string

const (
	EnvironmentTesting    Environment = "testing"
	EnvironmentStaging    Environment = "staging"
	EnvironmentProduction Environment = "production"
)

// Environments lists every supported environment in promotion order.
var Environments = []Environment{
	EnvironmentTesting,
	EnvironmentStaging,
	EnvironmentProduction,
}

// ParseEnvironment validates name against the fixed environment set.
func ParseEnvironment(name string) (Environment, error) {
	for _, env := range Environments {
		if string(env) == name {
			return env, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of: %s)", ErrInvalidEnvironment, name, EnvironmentNames())
}

// EnvironmentNames returns the supported environments as a comma separated list.
func EnvironmentNames() string {
	names := make([]string, len(Environments))
	for i, env := range Environments {
		names[i] = string(env)
	}
	return strings.Join(names, ", ")
}

func (e Environment) String() string {
	return string(e)
}
