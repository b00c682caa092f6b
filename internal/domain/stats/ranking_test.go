package stats

import "testing"

func entry(id string, games int, value int64) RankEntry {
	return RankEntry{PlayerID: id, Name: id, GamesPlayed: games, Value: value, HasValue: true}
}

func TestDenseRankTies(t *testing.T) {
	t.Parallel()

	// Two tied at 15 goals, one at 12: ranks must be 1,1,3.
	entries := []RankEntry{
		entry("p1", 60, 15),
		entry("p2", 60, 15),
		entry("p3", 60, 12),
	}

	got := DenseRank(entries, 50, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 ranked entries, got %d", len(got))
	}
	wantRanks := []int{1, 1, 3}
	for i, want := range wantRanks {
		if got[i].Rank != want {
			t.Fatalf("rank[%d] = %d, want %d (%+v)", i, got[i].Rank, want, got)
		}
	}
}

func TestDenseRankLongerTieGroups(t *testing.T) {
	t.Parallel()

	entries := []RankEntry{
		entry("p1", 60, 20),
		entry("p2", 60, 20),
		entry("p3", 60, 18),
		entry("p4", 60, 15),
		entry("p5", 60, 15),
		entry("p6", 60, 15),
		entry("p7", 60, 10),
	}

	got := DenseRank(entries, 50, 10)
	wantRanks := []int{1, 1, 3, 4, 4, 4, 7}
	if len(got) != len(wantRanks) {
		t.Fatalf("expected %d entries, got %d", len(wantRanks), len(got))
	}
	for i, want := range wantRanks {
		if got[i].Rank != want {
			t.Fatalf("rank[%d] = %d, want %d", i, got[i].Rank, want)
		}
	}
}

func TestDenseRankInvariant(t *testing.T) {
	t.Parallel()

	entries := []RankEntry{
		entry("p1", 60, 9), entry("p2", 60, 9), entry("p3", 60, 7),
		entry("p4", 60, 7), entry("p5", 60, 7), entry("p6", 60, 1),
	}

	got := DenseRank(entries, 0, 0)
	for i := 1; i < len(got); i++ {
		if got[i].Value == got[i-1].Value && got[i].Rank != got[i-1].Rank {
			t.Fatalf("tied values must share rank: %+v", got)
		}
		if got[i].Value != got[i-1].Value {
			tieSize := 0
			for j := range got {
				if got[j].Rank == got[i-1].Rank {
					tieSize++
				}
			}
			if got[i].Rank != got[i-1].Rank+tieSize {
				t.Fatalf("rank must skip by tie group size: %+v", got)
			}
		}
	}
}

func TestDenseRankEligibilityFloor(t *testing.T) {
	t.Parallel()

	entries := []RankEntry{
		entry("p1", 49, 99),
		entry("p2", 50, 5),
	}

	got := DenseRank(entries, 50, 10)
	if len(got) != 1 || got[0].PlayerID != "p2" {
		t.Fatalf("entries below the games floor must never rank: %+v", got)
	}
}

func TestDenseRankNullMetricSkipped(t *testing.T) {
	t.Parallel()

	entries := []RankEntry{
		entry("p1", 60, 90),
		{PlayerID: "p2", Name: "p2", GamesPlayed: 60, HasValue: false},
	}

	got := DenseRank(entries, 0, 10)
	if len(got) != 1 || got[0].PlayerID != "p1" {
		t.Fatalf("null metrics must be skipped, got %+v", got)
	}
}

func TestDenseRankLimitDropsBoundaryTies(t *testing.T) {
	t.Parallel()

	// Three players tied at rank 3 with limit 3: the board is cut at three
	// positions, so only the first member of the tie group survives and the
	// other two are dropped despite sharing its rank.
	entries := []RankEntry{
		entry("p1", 60, 30),
		entry("p2", 60, 25),
		entry("p3", 60, 20),
		entry("p4", 60, 20),
		entry("p5", 60, 20),
		entry("p6", 60, 15),
	}

	got := DenseRank(entries, 0, 3)
	if len(got) != 3 {
		t.Fatalf("output must not exceed the limit, got %d entries: %+v", len(got), got)
	}
	wantRanks := []int{1, 2, 3}
	for i, want := range wantRanks {
		if got[i].Rank != want {
			t.Fatalf("rank[%d] = %d, want %d (%+v)", i, got[i].Rank, want, got)
		}
	}
	if got[2].PlayerID != "p3" {
		t.Fatalf("cutoff must keep the stable-order head of the tie group, got %+v", got[2])
	}

	// A limit landing inside an earlier tie group splits it the same way.
	got = DenseRank(entries, 0, 4)
	if len(got) != 4 || got[3].PlayerID != "p4" || got[3].Rank != 3 {
		t.Fatalf("expected 4 entries ending at p4 rank 3, got %+v", got)
	}
}

func TestDenseRankTieOrderStable(t *testing.T) {
	t.Parallel()

	entries := []RankEntry{
		entry("pb", 60, 10),
		entry("pa", 60, 10),
	}

	got := DenseRank(entries, 0, 10)
	if got[0].PlayerID != "pa" || got[1].PlayerID != "pb" {
		t.Fatalf("tied entries must order by player id for determinism: %+v", got)
	}
}
