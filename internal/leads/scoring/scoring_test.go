package scoring

import "testing"

func TestScore_PriorityOrder(t *testing.T) {
	cases := []struct {
		status string
		want   int
	}{
		{"Hot", ScoreHot},
		{"hot", ScoreHot},
		{"Hot Investor", ScoreHot}, // hot wins over investor
		{"Investor", ScoreInvestor},
		{"investor lead", ScoreInvestor},
		{"Contacted", ScoreContacted},
		{"recontacted", ScoreContacted},
		{"New", ScoreNew},
		{"renewed", ScoreNew}, // "new" substring of "renewed", accepted quirk
		{"Cold", ScoreCold},
		{"ice cold", ScoreCold},
		{"", ScoreUnknown},
		{"qualified", ScoreUnknown},
	}

	for _, tc := range cases {
		if got := Score(tc.status); got != tc.want {
			t.Fatalf("Score(%q) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	if Score("HOT") != Score("hot") {
		t.Fatal("expected scoring to ignore case")
	}
	if Score("InVeStOr") != ScoreInvestor {
		t.Fatalf("expected mixed-case investor to score %d", ScoreInvestor)
	}
}

func TestIsHot(t *testing.T) {
	if !IsHot("Very Hot") {
		t.Fatal("expected 'Very Hot' to be hot")
	}
	if IsHot("Cold") {
		t.Fatal("expected 'Cold' not to be hot")
	}
}

func TestIsConvertible(t *testing.T) {
	if !IsConvertible("Investor") || !IsConvertible("hot") {
		t.Fatal("expected investor and hot to be convertible")
	}
	if IsConvertible("Contacted") {
		t.Fatal("expected contacted not to be convertible")
	}
}
