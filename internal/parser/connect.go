package parser

import (
	"regexp"
	"strings"

	"github.com/pable/go-tf2-metrics/internal/model"
	"github.com/pable/go-tf2-metrics/internal/registry"
)

const connectedSuffix = "connected"

// serverRe matches the line the client prints after joining a server.
var serverRe = regexp.MustCompile(`^Connected to (\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}:\d{1,5})$`)

// ConnectedName returns the player name of a "<name> connected" line.
func ConnectedName(line string) (model.PlayerName, bool) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "Connected to ") {
		return "", false
	}
	name, ok := strings.CutSuffix(line, " "+connectedSuffix)
	if !ok || name == "" {
		return "", false
	}
	return model.PlayerName(name), true
}

// ReadConnections returns the names of all players seen connecting, in order
// of first appearance.
func ReadConnections(lines []string) []model.PlayerName {
	seen := make(map[model.PlayerName]struct{})
	var out []model.PlayerName
	for _, l := range lines {
		name, ok := ConnectedName(l)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ServerAddress returns the address of the last server joined, as "ip:port".
func ServerAddress(lines []string) (string, bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		if m := serverRe.FindStringSubmatch(strings.TrimSpace(lines[i])); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ParseSuicide returns the player of a "<name> died." or "<name> suicided."
// line. The name must be known; these lines carry no other delimiter to
// validate against.
func ParseSuicide(line string, names *registry.Snapshot) (model.PlayerName, bool) {
	line = strings.TrimSpace(line)
	for _, suffix := range []string{" died.", " suicided."} {
		name, ok := strings.CutSuffix(line, suffix)
		if ok && names.Contains(model.PlayerName(name)) {
			return model.PlayerName(name), true
		}
	}
	return "", false
}
