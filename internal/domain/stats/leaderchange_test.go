package stats

import "testing"

func TestClassifyLeaderChange(t *testing.T) {
	t.Parallel()

	ana := &Leader{PlayerID: "p1", Name: "Ana", Value: 12}
	anaMore := &Leader{PlayerID: "p1", Name: "Ana", Value: 14}
	ben12 := &Leader{PlayerID: "p2", Name: "Ben", Value: 12}
	ben15 := &Leader{PlayerID: "p2", Name: "Ben", Value: 15}

	tests := []struct {
		name     string
		previous *Leader
		current  *Leader
		want     ChangeKind
	}{
		{name: "no leader either side", previous: nil, current: nil, want: ChangeNoLeader},
		{name: "leader appears", previous: nil, current: ana, want: ChangeNewLeader},
		{name: "leader disappears", previous: ana, current: nil, want: ChangeNoLeader},
		{name: "same player remains", previous: ana, current: anaMore, want: ChangeRemains},
		{name: "different player equal value", previous: ana, current: ben12, want: ChangeTied},
		{name: "different player higher value", previous: ana, current: ben15, want: ChangeOvertake},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyLeaderChange(tc.previous, tc.current)
			if got.Kind != tc.want {
				t.Fatalf("ClassifyLeaderChange = %s, want %s", got.Kind, tc.want)
			}
		})
	}
}

func TestClassifyLeaderChangeCarriesValues(t *testing.T) {
	t.Parallel()

	got := ClassifyLeaderChange(
		&Leader{PlayerID: "p1", Name: "Ana", Value: 12},
		&Leader{PlayerID: "p2", Name: "Ben", Value: 15},
	)

	if got.PreviousName != "Ana" || got.PreviousValue != 12 {
		t.Fatalf("previous side not carried: %+v", got)
	}
	if got.CurrentName != "Ben" || got.CurrentValue != 15 {
		t.Fatalf("current side not carried: %+v", got)
	}
}
