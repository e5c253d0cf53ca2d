package tutorial

import "testing"

func validPack() Pack {
	return Pack{
		Kind:          PackKind,
		SchemaVersion: SupportedSchemaVersion,
		PackID:        "builtin-arithmetic",
		Name:          "x",
		Version:       "0.1.0",
		Tutorials: []Tutorial{{
			ID:         "sums",
			Title:      "Sums",
			Difficulty: Easy,
			Challenges: []ChallengeDef{{Question: "1 + 1", Answer: "2"}},
		}},
	}
}

func TestPackValidateAcceptsValidPack(t *testing.T) {
	if err := validPack().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPackValidateRejectsUnsupportedSchemaVersion(t *testing.T) {
	p := validPack()
	p.SchemaVersion = SupportedSchemaVersion + 1
	if err := p.Validate(); err == nil {
		t.Fatalf("expected unsupported schema version error")
	}
}

func TestTutorialValidateRejectsUnknownDifficulty(t *testing.T) {
	p := validPack()
	p.Tutorials[0].Difficulty = "extreme"
	if err := p.Validate(); err == nil {
		t.Fatalf("expected difficulty error")
	}
}

func TestTutorialValidateRequiresAnswer(t *testing.T) {
	p := validPack()
	p.Tutorials[0].Challenges[0].Answer = "  "
	if err := p.Validate(); err == nil {
		t.Fatalf("expected missing answer error")
	}
}

func TestPackValidateRejectsDuplicateTutorial(t *testing.T) {
	p := validPack()
	p.Tutorials = append(p.Tutorials, p.Tutorials[0])
	if err := p.Validate(); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	if err != nil || d != Hard {
		t.Fatalf("got %q %v", d, err)
	}
	if _, err := ParseDifficulty("extreme"); err == nil {
		t.Fatalf("expected error")
	}
}
