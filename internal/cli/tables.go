package cli

import "mentorlink-cli/internal/model"

// Text renderings for --format text.

type mentorRows []model.Mentor

func (r mentorRows) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r))
	for _, m := range r {
		rows = append(rows, []string{m.Email, m.Name, m.TechStack})
	}
	return []string{"EMAIL", "NAME", "TECH STACK"}, rows
}

type matchRows []model.MatchRequest

func (r matchRows) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r))
	for _, m := range r {
		rows = append(rows, []string{m.MenteeEmail, m.MentorEmail, m.Status.Label(), m.Message})
	}
	return []string{"MENTEE", "MENTOR", "STATUS", "MESSAGE"}, rows
}

// record renders one object as field/value rows.
type record []field

type field struct {
	Name  string
	Value string
}

func (r record) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r))
	for _, f := range r {
		rows = append(rows, []string{f.Name, f.Value})
	}
	return []string{"FIELD", "VALUE"}, rows
}

func mentorRecord(m model.Mentor) record {
	return record{
		{"email", m.Email},
		{"name", m.Name},
		{"tech_stack", m.TechStack},
		{"intro", m.Intro},
		{"profile_image", m.ProfileImage},
	}
}

func profileRecord(p model.Profile) record {
	return record{
		{"email", p.Email},
		{"name", p.Name},
		{"role", string(p.Role)},
		{"tech_stack", p.TechStack},
		{"intro", p.Intro},
	}
}

func matchRecord(m model.MatchRequest) record {
	return record{
		{"mentee_email", m.MenteeEmail},
		{"mentor_email", m.MentorEmail},
		{"status", string(m.Status)},
		{"message", m.Message},
	}
}
