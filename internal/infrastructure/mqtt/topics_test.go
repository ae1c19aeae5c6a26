package mqtt

import "testing"

func TestTopics_ApplianceState(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		host string
		path string
		want string
	}{
		{
			name: "device state path",
			host: "192.168.1.50",
			path: "/Devices/000123/State",
			want: "miele/state/192.168.1.50/Devices/000123/State",
		},
		{
			name: "trailing slash trimmed",
			host: "192.168.1.50",
			path: "/Devices/",
			want: "miele/state/192.168.1.50/Devices",
		},
		{
			name: "root path",
			host: "192.168.1.50",
			path: "/",
			want: "miele/state/192.168.1.50",
		},
		{
			name: "wildcard characters replaced",
			host: "192.168.1.50",
			path: "/Devices/+/#",
			want: "miele/state/192.168.1.50/Devices/_/_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := topics.ApplianceState(tt.host, tt.path); got != tt.want {
				t.Errorf("ApplianceState() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTopics_BridgeStatus(t *testing.T) {
	if got := (Topics{}).BridgeStatus(); got != "miele/bridge/status" {
		t.Errorf("BridgeStatus() = %q, want miele/bridge/status", got)
	}
}

func TestTopics_AllApplianceStates(t *testing.T) {
	if got := (Topics{}).AllApplianceStates(); got != "miele/state/#" {
		t.Errorf("AllApplianceStates() = %q, want miele/state/#", got)
	}
}
