package catalog

// Programs lists the program-level methodologies.
var Programs = MustNew("program methodologies", "hybrid",
	Category{Key: "safe", Label: "SAFe", Icon: "▲", Color: "#83a598",
		Description: "Scaled Agile Framework for coordinating many agile teams"},
	Category{Key: "msp", Label: "MSP", Icon: "◆", Color: "#d3869b",
		Description: "Managing Successful Programmes, benefits-led transformation"},
	Category{Key: "pmi", Label: "PMI Program", Icon: "■", Color: "#fabd2f",
		Description: "PMI Standard for Program Management, lifecycle and governance"},
	Category{Key: "prince2", Label: "PRINCE2 Programme", Icon: "●", Color: "#fe8019",
		Description: "PRINCE2-aligned programme with stage gates and tolerances"},
	Category{Key: "hybrid", Label: "Hybrid", Icon: "◎", Color: "#8ec07c",
		Description: "Mix of predictive and adaptive practices tailored per project"},
)

// Projects lists the project-level methodologies.
var Projects = MustNew("project methodologies", "hybrid",
	Category{Key: "waterfall", Label: "Waterfall", Icon: "▼", Color: "#83a598",
		Description: "Sequential phases with fixed scope and upfront planning"},
	Category{Key: "agile", Label: "Agile", Icon: "↻", Color: "#8ec07c",
		Description: "Iterative delivery with evolving requirements"},
	Category{Key: "scrum", Label: "Scrum", Icon: "⟳", Color: "#b8bb26",
		Description: "Time-boxed sprints with defined roles and ceremonies"},
	Category{Key: "kanban", Label: "Kanban", Icon: "▤", Color: "#fabd2f",
		Description: "Continuous flow with work-in-progress limits"},
	Category{Key: "prince2", Label: "PRINCE2", Icon: "●", Color: "#fe8019",
		Description: "Controlled stages with formal governance and tolerances"},
	Category{Key: "lean_six_sigma_green", Label: "Lean Six Sigma Green Belt", Icon: "◐", Color: "#98971a",
		Description: "DMAIC process improvement for focused team projects"},
	Category{Key: "lean_six_sigma_black", Label: "Lean Six Sigma Black Belt", Icon: "◑", Color: "#928374",
		Description: "DMAIC process improvement for complex cross-functional problems"},
	Category{Key: "hybrid", Label: "Hybrid", Icon: "◎", Color: "#d3869b",
		Description: "Predictive planning with adaptive execution"},
)
