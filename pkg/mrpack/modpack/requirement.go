package modpack

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRequirement indicates a side requirement string outside the
// recognized set.
var ErrRequirement = errors.New("invalid requirement")

// ErrEnv indicates an environment block with the wrong key set.
var ErrEnv = errors.New("invalid env")

// Requirement states whether a mod is needed on one side of the game.
type Requirement int

const (
	RequirementUnknown Requirement = iota
	RequirementRequired
	RequirementOptional
	RequirementUnsupported
)

// ParseRequirement maps a manifest or registry side value onto a
// Requirement. The empty string and "unknown" both mean the side was
// never declared; any other unrecognized value is an error.
func ParseRequirement(s string) (Requirement, error) {
	switch s {
	case "", "unknown":
		return RequirementUnknown, nil
	case "required":
		return RequirementRequired, nil
	case "optional":
		return RequirementOptional, nil
	case "unsupported":
		return RequirementUnsupported, nil
	default:
		return RequirementUnknown, fmt.Errorf("%w: must be one of {required, optional, unsupported}, got %q", ErrRequirement, s)
	}
}

// String returns the lowercase name of the requirement.
func (r Requirement) String() string {
	switch r {
	case RequirementRequired:
		return "required"
	case RequirementOptional:
		return "optional"
	case RequirementUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Env holds a mod's client and server side requirements.
type Env struct {
	Client Requirement
	Server Requirement
}

// ParseEnv builds an Env from a manifest environment block. The block
// must carry exactly the keys "client" and "server".
func ParseEnv(m map[string]string) (Env, error) {
	client, haveClient := m["client"]
	server, haveServer := m["server"]
	if len(m) != 2 || !haveClient || !haveServer {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return Env{}, fmt.Errorf("%w: must have keys {client, server}, got {%s}", ErrEnv, strings.Join(keys, ", "))
	}

	c, err := ParseRequirement(client)
	if err != nil {
		return Env{}, err
	}
	s, err := ParseRequirement(server)
	if err != nil {
		return Env{}, err
	}
	return Env{Client: c, Server: s}, nil
}
