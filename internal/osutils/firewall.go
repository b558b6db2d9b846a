// Package osutils holds host integration that differs per operating system.
package osutils

import "fmt"

// FirewallRuleName is the display name of the inbound rule on Windows
const FirewallRuleName = "Astra Remote Input"

// firewallScript replaces the inbound rules for port with TCP (HTTP API)
// and UDP (trackpad channel) allow rules.
func firewallScript(port int) string {
	return fmt.Sprintf(
		"Remove-NetFirewallRule -DisplayName '%[1]s' -ErrorAction SilentlyContinue; "+
			"New-NetFirewallRule -DisplayName '%[1]s' -Direction Inbound -LocalPort %[2]d -Protocol TCP -Action Allow -Profile Private,Domain; "+
			"New-NetFirewallRule -DisplayName '%[1]s' -Direction Inbound -LocalPort %[2]d -Protocol UDP -Action Allow -Profile Private,Domain",
		FirewallRuleName, port,
	)
}
