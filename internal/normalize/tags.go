package normalize

import (
	"regexp"
	"strings"
)

// Transcript sources label speakers inconsistently ("Natalie (Agent):",
// "Agent (natalie):", a bare display name, "USER:"). Downstream consumers
// depend on exactly two canonical tags, so every recognized variant is
// rewritten to "Agent:" or "User:". Unrecognized lines pass through.
var (
	agentLineRe = regexp.MustCompile(`(?i)^(?:Natalie\s*\(Agent\)|Agent\s*\([^)]*\)|Natalie|Agent)\s*:\s*(.*)$`)
	userLineRe  = regexp.MustCompile(`(?i)^User\s*:\s*(.*)$`)
)

// Tags rewrites speaker labels line by line. No state crosses lines.
func Tags(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if m := agentLineRe.FindStringSubmatch(line); m != nil {
			lines[i] = "Agent: " + m[1]
			continue
		}
		if m := userLineRe.FindStringSubmatch(line); m != nil {
			lines[i] = "User: " + m[1]
		}
	}
	return strings.Join(lines, "\n")
}
