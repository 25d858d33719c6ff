package render

import (
	"strings"
	"testing"

	"tailor-backend/resume/model"
)

func sampleResume() model.Resume {
	r := model.Resume{
		Header: model.Header{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "555-123-4567",
		},
		Education: []model.EducationEntry{
			{School: "University of London", Degree: "BSc", Major: "Mathematics", Grad: "1840", GPA: "3.9"},
		},
		Experience: []model.RoleEntry{
			{
				Company: "Analytical Engines Ltd",
				Role:    "Engineer",
				Start:   "1837",
				End:     "1843",
				Bullets: []string{"Wrote the first published algorithm"},
			},
		},
		Skills: model.Skills{Languages: []string{"Go", "Python"}},
	}
	r.Normalize()
	return r
}

func TestResumeFillsTemplateBlocks(t *testing.T) {
	out := Resume(sampleResume())

	for _, want := range []string{
		"Ada Lovelace",
		"ada@example.com",
		"Analytical Engines Ltd",
		"Wrote the first published algorithm",
		"University of London",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "{{") {
		t.Error("unexpanded template placeholder left in output")
	}
}

func TestEscapeSpecialCharacters(t *testing.T) {
	r := sampleResume()
	r.Experience[0].Bullets = []string{"Cut costs by 50% & raised $2M with C# _tooling_"}
	out := Resume(r)

	for _, want := range []string{`50\%`, `\&`, `\$2M`, `C\#`, `\_tooling\_`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing escaped form %q", want)
		}
	}
	if strings.Contains(out, "50% &") {
		t.Error("raw special characters leaked into output")
	}
}

func TestGPAHiddenWhenLow(t *testing.T) {
	r := sampleResume()
	r.Education[0].GPA = "2.9"
	if out := Resume(r); strings.Contains(out, "2.9") {
		t.Error("low GPA should be omitted")
	}

	r.Education[0].GPA = "3.8"
	if out := Resume(r); !strings.Contains(out, "3.8") {
		t.Error("high GPA should be shown")
	}
}

func TestEmptySectionsProduceNoBlocks(t *testing.T) {
	r := model.Resume{Header: model.Header{Name: "Solo Name"}}
	r.Normalize()
	out := Resume(r)

	if !strings.Contains(out, "Solo Name") {
		t.Error("header missing")
	}
	if strings.Contains(out, "\\section*{Projects}") {
		t.Error("empty projects section should be omitted")
	}
}
