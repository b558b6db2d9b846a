package osutils

import (
	"strings"
	"testing"
)

func TestFirewallScript(t *testing.T) {
	script := firewallScript(44828)
	for _, want := range []string{
		"Remove-NetFirewallRule -DisplayName 'Astra Remote Input'",
		"-LocalPort 44828 -Protocol TCP",
		"-LocalPort 44828 -Protocol UDP",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("Script missing %q:\n%s", want, script)
		}
	}
	if strings.Contains(script, "%!") {
		t.Errorf("Bad format verb in script: %s", script)
	}
}
