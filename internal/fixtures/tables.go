package fixtures

// tableSpec describes how one synthetic table is laid out.
type tableSpec struct {
	name     string
	header   []string
	elements []string
	// leveled tables emit an LV row after every IM row.
	leveled bool
	// valueMin and valueMax bound the IM (or only) row value.
	valueMin float64
	valueMax float64
}

var tableSpecs = []tableSpec{
	{
		name:    "Abilities.txt",
		header:  []string{"O*NET-SOC Code", "Title", "Element ID", "Element Name", "Scale ID", "Data Value", "N", "Date", "Domain Source"},
		leveled: true,
		elements: []string{
			"Oral Comprehension", "Deductive Reasoning", "Mathematical Reasoning", "Spatial Orientation",
			"Finger Dexterity", "Stamina", "Hearing Sensitivity", "Originality", "Memorization",
		},
		valueMin: importanceMin,
		valueMax: importanceMax,
	},
	{
		name:    "Skills.txt",
		header:  []string{"O*NET-SOC Code", "Title", "Element ID", "Element Name", "Scale ID", "Data Value", "N", "Date", "Domain Source"},
		leveled: true,
		elements: []string{
			"Reading Comprehension", "Writing", "Speaking", "Critical Thinking", "Programming",
			"Time Management", "Instructing", "Negotiation", "Active Learning",
		},
		valueMin: importanceMin,
		valueMax: importanceMax,
	},
	{
		name:   "Knowledge.txt",
		header: []string{"O*NET-SOC Code", "Title", "Element ID", "Element Name", "Data Value", "Date", "Domain Source"},
		elements: []string{
			"Computers and Electronics", "Biology", "Fine Arts", "Mathematics", "Education and Training",
			"Sales and Marketing", "Law and Government", "Design",
		},
		valueMin: 0,
		valueMax: levelMax,
	},
	{
		name:     "Interests.txt",
		header:   []string{"O*NET-SOC Code", "Title", "Element ID", "RIASEC Interest Area", "Data Value", "Date", "Domain Source"},
		elements: []string{"Realistic", "Investigative", "Artistic", "Social", "Enterprising", "Conventional"},
		valueMin: extentMin,
		valueMax: extentMax,
	},
	{
		name:     "Work Values.txt",
		header:   []string{"O*NET-SOC Code", "Title", "Element ID", "Work Value", "Data Value", "Date", "Domain Source"},
		elements: []string{"Achievement", "Working Conditions", "Recognition", "Relationships", "Support", "Independence"},
		valueMin: extentMin,
		valueMax: extentMax,
	},
}
