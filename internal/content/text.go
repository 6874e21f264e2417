package content

var (
	Owner      = "Lazarus"
	OwnerEmail = "lazarusgero1@gmail.com"
	GitHubURL  = "https://github.com/Evan620"

	AboutMe = `Senior automation engineer specializing in AWS, Python development and AI
	integration. The code name Lazarus stands for bringing legacy systems back to life
	through modern technology.`

	HRProfile = `Solutions-oriented automation engineer with 7+ years of experience building
	scalable systems that drive operational efficiency. Strong collaborator with excellent
	team leadership skills and a focus on mentoring junior talent.`

	CTOProfile = `Automation architect with deep expertise in cloud-native infrastructure, data
	pipelines, and AI integration. Specialized in high-performance, scalable systems with a
	focus on operational reliability and security.`

	SummaryProfile = `Strategic automation architect delivering quantifiable business impact
	through innovative technical solutions. Specialized in translating business requirements
	into scalable, efficient systems.`

	LeadershipProfile = `Strategic technical leader with a proven track record of aligning
	technology initiatives with business objectives. Expertise in building cross-functional
	teams and fostering innovation culture.`
)
