package utm

import (
	"testing"

	"utmforge/pkg/model"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		base string
		rec  model.CampaignRecord
		want string
	}{
		{
			name: "empty base yields empty string",
			base: "",
			rec:  model.CampaignRecord{Source: "newsletter", Medium: "email"},
			want: "",
		},
		{
			name: "whitespace base yields empty string",
			base: "   ",
			rec:  model.CampaignRecord{Source: "newsletter", Medium: "email"},
			want: "",
		},
		{
			name: "scheme added to bare base",
			base: "example.com",
			rec:  model.CampaignRecord{Source: "newsletter", Medium: "email", Name: "spring_sale"},
			want: "https://example.com?utm_source=newsletter&utm_medium=email&utm_campaign=spring_sale",
		},
		{
			name: "all six parameters in fixed order",
			base: "https://example.com/landing",
			rec: model.CampaignRecord{
				Source:  "google",
				Medium:  "cpc",
				Name:    "spring_sale",
				ID:      "abc123",
				Term:    "running_shoes",
				Content: "banner_a",
			},
			want: "https://example.com/landing?utm_source=google&utm_medium=cpc&utm_campaign=spring_sale&utm_id=abc123&utm_term=running_shoes&utm_content=banner_a",
		},
		{
			name: "existing parameters preserved in place",
			base: "https://example.com/landing?ref=partner&page=2",
			rec:  model.CampaignRecord{Source: "newsletter", Medium: "email"},
			want: "https://example.com/landing?ref=partner&page=2&utm_source=newsletter&utm_medium=email",
		},
		{
			name: "colliding key overwritten without moving",
			base: "https://example.com/?utm_source=old&page=2",
			rec:  model.CampaignRecord{Source: "new", Medium: "email"},
			want: "https://example.com/?utm_source=new&page=2&utm_medium=email",
		},
		{
			name: "empty fields neither added nor overwrite",
			base: "https://example.com/?utm_campaign=keep",
			rec:  model.CampaignRecord{Source: "newsletter", Medium: "email"},
			want: "https://example.com/?utm_campaign=keep&utm_source=newsletter&utm_medium=email",
		},
		{
			name: "repeated base key collapses to last value",
			base: "https://example.com/?a=1&a=2",
			rec:  model.CampaignRecord{Source: "s", Medium: "m"},
			want: "https://example.com/?a=2&utm_source=s&utm_medium=m",
		},
		{
			name: "slash kept literal in values",
			base: "https://example.com",
			rec:  model.CampaignRecord{Source: "blog", Medium: "referral", Name: "spring/sale"},
			want: "https://example.com?utm_source=blog&utm_medium=referral&utm_campaign=spring/sale",
		},
		{
			name: "fragment preserved",
			base: "https://example.com/page#section",
			rec:  model.CampaignRecord{Source: "s", Medium: "m"},
			want: "https://example.com/page?utm_source=s&utm_medium=m#section",
		},
		{
			name: "unparseable base degrades to normalized input",
			base: "https://exa\x7fmple.com",
			rec:  model.CampaignRecord{Source: "s", Medium: "m"},
			want: "https://exa\x7fmple.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.base, tt.rec); got != tt.want {
				t.Errorf("Build(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	base := "https://example.com/landing?ref=abc&utm_source=old"
	rec := model.CampaignRecord{
		Source:  "google",
		Medium:  "cpc",
		Name:    "spring_sale",
		Term:    "shoes",
		Content: "variant_b",
	}

	first := Build(base, rec)
	for i := 0; i < 50; i++ {
		if got := Build(base, rec); got != first {
			t.Fatalf("iteration %d: Build not deterministic: %q vs %q", i, got, first)
		}
	}
}

func TestBuild_DoesNotMutateRecord(t *testing.T) {
	rec := model.CampaignRecord{Source: "Google Ads", Medium: "CPC"}
	before := rec

	Build("https://example.com", rec)

	if rec != before {
		t.Errorf("Build mutated its record argument: %+v", rec)
	}
}
