package prompt

import "strings"

// The builders emit JSON-shaped text. Free-text inputs are interpolated into
// quoted positions, so anything that could break the quoting is escaped here.
var jsonEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeJSON(s string) string {
	return jsonEscaper.Replace(s)
}
