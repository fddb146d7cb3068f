package extract

// DefaultSkills is the built-in skill vocabulary.
func DefaultSkills() []string {
	return []string{
		"Python", "Java", "C++", "JavaScript", "SQL", "Machine Learning",
		"Data Science", "Django", "Flask", "HTML", "CSS", "React", "Node.js",
		"AWS", "Azure", "Docker", "Kubernetes", "Git", "PostgreSQL", "MongoDB",
		"Agile", "Leadership", "Teamwork",
	}
}

// DefaultDegrees is the built-in education vocabulary of degree names and
// abbreviations.
func DefaultDegrees() []string {
	return []string{
		"bachelor", "master", "phd", "associate", "bsc", "msc", "mba", "bba",
		"mca", "btech", "mtech", "be", "me", "computer science", "information technology",
	}
}
