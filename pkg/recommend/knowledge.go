package recommend

// Curated career fields.
const (
	FieldSoftwareDevelopment = "Software Development"
	FieldMarketing           = "Marketing"
	FieldDataScience         = "Data Science"
)

//nolint:gochecknoglobals // Curated knowledge base, read-only after init
var skillTable = map[string][]string{
	FieldSoftwareDevelopment: {
		"Cloud Computing (AWS/Azure)",
		"DevOps practices",
		"Microservices Architecture",
		"Container Technologies (Docker/Kubernetes)",
		"API Design and Development",
	},
	FieldMarketing: {
		"Digital Marketing Analytics",
		"Content Marketing Strategy",
		"SEO/SEM",
		"Social Media Marketing",
		"Marketing Automation Tools",
	},
	FieldDataScience: {
		"Machine Learning",
		"Statistical Analysis",
		"Python/R Programming",
		"Big Data Technologies",
		"Data Visualization",
	},
}

//nolint:gochecknoglobals // Curated knowledge base, read-only after init
var fallbackSkills = []string{
	"Project Management",
	"Communication Skills",
	"Problem Solving",
	"Team Collaboration",
	"Industry-specific Tools",
}

//nolint:gochecknoglobals // Curated knowledge base, read-only after init
var pathTable = map[string][]string{
	FieldSoftwareDevelopment: {
		"Junior Developer -> Mid-level Developer -> Senior Developer",
		"Full Stack Developer -> Technical Lead -> Solution Architect",
		"Backend Developer -> DevOps Engineer -> Cloud Architect",
	},
	FieldMarketing: {
		"Marketing Associate -> Marketing Manager -> Marketing Director",
		"Content Marketer -> Content Strategy Manager -> Chief Content Officer",
		"Digital Marketing Specialist -> Digital Marketing Manager -> CMO",
	},
	FieldDataScience: {
		"Data Analyst -> Data Scientist -> Lead Data Scientist",
		"Business Intelligence Analyst -> Data Engineer -> Data Architect",
		"Machine Learning Engineer -> AI Researcher -> AI/ML Director",
	},
}

//nolint:gochecknoglobals // Curated knowledge base, read-only after init
var fallbackPaths = []string{
	"Entry Level -> Mid Level -> Senior Level",
	"Specialist -> Team Lead -> Department Head",
	"Individual Contributor -> Manager -> Director",
}

//nolint:gochecknoglobals // Curated knowledge base, read-only after init
var roadmapTable = map[string][]string{
	FieldSoftwareDevelopment: {
		"Master fundamental programming concepts and languages",
		"Build personal projects for portfolio",
		"Learn version control and collaboration tools",
		"Practice coding challenges and problem-solving",
		"Contribute to open source projects",
		"Apply for internships or entry-level positions",
	},
	FieldMarketing: {
		"Learn digital marketing fundamentals",
		"Get certified in key marketing tools",
		"Create and manage social media campaigns",
		"Develop content marketing skills",
		"Build a portfolio of marketing campaigns",
		"Network with industry professionals",
	},
	FieldDataScience: {
		"Master statistics and mathematics",
		"Learn programming languages (Python/R)",
		"Practice with real datasets",
		"Participate in data science competitions",
		"Build machine learning projects",
		"Get certified in data science tools",
	},
}

//nolint:gochecknoglobals // Curated knowledge base, read-only after init
var fallbackRoadmap = []string{
	"Build foundational knowledge in the field",
	"Obtain relevant certifications",
	"Gain practical experience through projects",
	"Network with industry professionals",
	"Apply for relevant positions",
	"Continue learning and staying updated",
}
