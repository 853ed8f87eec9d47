package control

import (
	"fmt"
	"strings"
)

// Command is one input action from the keyboard or a script.
type Command int

const (
	CmdNone Command = iota
	CmdMoveUp
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdSpawnVillager
	CmdSpawnArcher
	CmdSpawnKnight
	CmdSpawnResource
	CmdAttack
	CmdMount
	CmdCollect
	CmdCycleFilter
	CmdCopyReport
)

var commandNames = map[Command]string{
	CmdNone:          "none",
	CmdMoveUp:        "up",
	CmdMoveDown:      "down",
	CmdMoveLeft:      "left",
	CmdMoveRight:     "right",
	CmdSpawnVillager: "villager",
	CmdSpawnArcher:   "archer",
	CmdSpawnKnight:   "knight",
	CmdSpawnResource: "resource",
	CmdAttack:        "attack",
	CmdMount:         "mount",
	CmdCollect:       "collect",
	CmdCycleFilter:   "filter",
	CmdCopyReport:    "copy",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCommand maps a script word such as "attack" to a Command.
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range commandNames {
		if c != CmdNone && name == s {
			return c, nil
		}
	}
	return CmdNone, fmt.Errorf("unknown command %q", s)
}

// ParseScript splits a comma or space separated command list.
func ParseScript(script string) ([]Command, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]Command, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCommand(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
