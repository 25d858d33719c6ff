package model

// Resume is the canonical structured resume payload. All fields default to
// empty; the structuring prompt forbids inventing content, so unknown fields
// arrive as "" or [].
type Resume struct {
	Header     Header            `json:"header"`
	Education  []EducationEntry  `json:"education"`
	Skills     Skills            `json:"skills"`
	Experience []RoleEntry       `json:"experience"`
	Projects   []ProjectEntry    `json:"projects"`
	Leadership []LeadershipEntry `json:"leadership"`
	Awards     []string          `json:"awards"`
}

// Header captures top-of-resume contact and identity details.
type Header struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Location  string `json:"location"`
}

// EducationEntry is one school record.
type EducationEntry struct {
	School     string   `json:"school"`
	Degree     string   `json:"degree"`
	Major      string   `json:"major"`
	Grad       string   `json:"grad"`
	GPA        string   `json:"gpa"`
	Coursework []string `json:"coursework"`
}

// Skills groups skills by category.
type Skills struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
	Concepts   []string `json:"concepts"`
}

// RoleEntry is one employment record.
type RoleEntry struct {
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Role     string   `json:"role"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Bullets  []string `json:"bullets"`
}

// ProjectEntry is one project record.
type ProjectEntry struct {
	Name    string   `json:"name"`
	Link    string   `json:"link"`
	Stack   []string `json:"stack"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Bullets []string `json:"bullets"`
}

// LeadershipEntry is one leadership or volunteering record.
type LeadershipEntry struct {
	Org     string   `json:"org"`
	Title   string   `json:"title"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Bullets []string `json:"bullets"`
}

// Normalize replaces nil slices with empty ones so serialized drafts always
// carry [] instead of null, matching what structuring prompts promise.
func (r *Resume) Normalize() {
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Skills.Languages == nil {
		r.Skills.Languages = []string{}
	}
	if r.Skills.Frameworks == nil {
		r.Skills.Frameworks = []string{}
	}
	if r.Skills.Tools == nil {
		r.Skills.Tools = []string{}
	}
	if r.Skills.Concepts == nil {
		r.Skills.Concepts = []string{}
	}
	if r.Experience == nil {
		r.Experience = []RoleEntry{}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
	if r.Leadership == nil {
		r.Leadership = []LeadershipEntry{}
	}
	if r.Awards == nil {
		r.Awards = []string{}
	}
	for i := range r.Education {
		if r.Education[i].Coursework == nil {
			r.Education[i].Coursework = []string{}
		}
	}
	for i := range r.Experience {
		if r.Experience[i].Bullets == nil {
			r.Experience[i].Bullets = []string{}
		}
	}
	for i := range r.Projects {
		if r.Projects[i].Stack == nil {
			r.Projects[i].Stack = []string{}
		}
		if r.Projects[i].Bullets == nil {
			r.Projects[i].Bullets = []string{}
		}
	}
	for i := range r.Leadership {
		if r.Leadership[i].Bullets == nil {
			r.Leadership[i].Bullets = []string{}
		}
	}
}
