package parsing

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RoleKeywords are job-function nouns, seniority adjectives and stack
// fragments that mark a line as a job title.
var RoleKeywords = []string{
	"engineer", "developer", "programmer", "architect", "designer", "analyst",
	"scientist", "consultant", "specialist", "manager", "director", "lead",
	"head", "officer", "administrator", "coordinator", "technician", "intern",
	"associate", "assistant", "executive", "president", "founder", "co-founder",
	"cto", "ceo", "cfo", "vp", "owner", "contractor", "freelancer", "freelance",
	"researcher", "instructor", "teacher", "tester", "product owner", "scrum master",
	"senior", "junior", "principal", "staff", "sr", "jr", "mid-level",
	"frontend", "front-end", "front end", "backend", "back-end", "back end",
	"fullstack", "full-stack", "full stack", "devops", "sre", "qa", "ux", "ui",
}

// SentenceConnectives mark a long line as prose rather than a skill list
var SentenceConnectives = []string{
	"and", "the", "with", "to", "for", "that", "which", "who", "while", "where",
	"i", "my", "am", "is", "are", "have", "has", "passionate", "dedicated",
	"experienced", "delivering", "focused", "driven",
}

// LeadingConnectives reject a skill candidate when they are its first word
var LeadingConnectives = []string{
	"and", "or", "the", "a", "an", "to", "with", "using", "about", "passionate",
	"for", "of", "in", "on", "by", "from", "through", "including", "while", "who",
	"which", "that", "as", "at", "into", "my", "our", "i", "we", "also", "both",
	"across", "delivering", "ensuring", "strong", "excellent",
}

// StopWords are never skills on their own
var StopWords = []string{
	"and", "or", "the", "a", "an", "to", "with", "of", "in", "on", "for", "by",
	"at", "as", "etc", "other", "others", "various", "more", "using", "skills",
	"tools", "technologies", "languages", "frameworks",
}

// InstitutionKeywords reject skill candidates that name an organization
var InstitutionKeywords = []string{
	"university", "college", "institute", "academy", "school", "polytechnic",
	"foundation", "corporation", "inc", "llc", "ltd", "gmbh",
}

// PastTenseVerbs reject skill candidates that open like an achievement bullet
var PastTenseVerbs = []string{
	"ensured", "developed", "created", "built", "designed", "implemented", "led",
	"managed", "improved", "increased", "reduced", "delivered", "launched",
	"maintained", "collaborated", "worked", "architected", "optimized", "automated",
	"migrated", "established", "achieved", "coordinated", "supported", "contributed",
	"drove", "spearheaded", "mentored", "owned", "wrote", "deployed", "integrated",
	"analyzed", "streamlined", "introduced", "partnered", "researched", "refactored",
	"presented", "spoke", "volunteered", "served", "taught",
}

// CompoundFrameworkPrefixes let medium-length skill phrases through
var CompoundFrameworkPrefixes = []string{
	"spring", "ruby on", "react", "vue", "angular", "next", "node", "asp.net",
	".net", "google", "amazon", "aws", "azure", "microsoft", "apache", "github",
	"gitlab", "power", "tailwind", "material", "scikit", "hugging", "adobe",
	"unreal", "unity", "oracle", "sql", "ms",
}

// PlaceKeywords raise the priority of a location candidate
var PlaceKeywords = []string{
	"remote", "hybrid", "usa", "us", "united states", "canada", "uk", "united kingdom",
	"england", "india", "germany", "france", "spain", "netherlands", "australia",
	"ireland", "singapore", "brazil", "mexico", "japan",
	"al", "ak", "az", "ar", "ca", "co", "ct", "de", "dc", "fl", "ga", "hi", "id",
	"il", "in", "ia", "ks", "ky", "la", "me", "md", "ma", "mi", "mn", "ms", "mo",
	"mt", "ne", "nv", "nh", "nj", "nm", "ny", "nc", "nd", "oh", "ok", "or", "pa",
	"ri", "sc", "sd", "tn", "tx", "ut", "vt", "va", "wa", "wv", "wi", "wy",
	"on", "bc", "qc", "ab",
	"california", "new york", "texas", "washington", "florida", "illinois",
	"massachusetts", "ontario", "british columbia",
}

// NonPortfolioDomains are hosts already covered by other contact fields
var NonPortfolioDomains = []string{
	"linkedin.com", "gmail.com", "googlemail.com", "outlook.com", "hotmail.com",
	"live.com", "yahoo.com", "icloud.com", "me.com", "proton.me", "protonmail.com",
	"aol.com", "facebook.com", "twitter.com", "x.com", "instagram.com",
}

// PersonalSiteDomains identify hosting platforms and TLDs favoured for portfolios
var PersonalSiteDomains = []string{
	"vercel.app", "netlify.app", "github.io", "herokuapp.com", "pages.dev",
	"web.app", "firebaseapp.com", "surge.sh", "onrender.com", "fly.dev",
	".dev", ".io", ".me",
}

// TechVocabulary maps lower-case technology names to their display form
var TechVocabulary = map[string]string{
	"go": "Go", "golang": "Go", "python": "Python", "java": "Java",
	"javascript": "JavaScript", "typescript": "TypeScript", "c++": "C++",
	"c#": "C#", "ruby": "Ruby", "rust": "Rust", "kotlin": "Kotlin", "swift": "Swift",
	"php": "PHP", "scala": "Scala", "dart": "Dart", "elixir": "Elixir",
	"haskell": "Haskell", "perl": "Perl", "matlab": "MATLAB", "objective-c": "Objective-C",
	"solidity": "Solidity", "bash": "Bash", "shell": "Shell", "powershell": "PowerShell",
	"sql": "SQL", "nosql": "NoSQL", "graphql": "GraphQL", "html": "HTML", "html5": "HTML5",
	"css": "CSS", "css3": "CSS3", "sass": "Sass", "react": "React",
	"react native": "React Native", "angular": "Angular", "vue": "Vue", "svelte": "Svelte",
	"next.js": "Next.js", "nuxt": "Nuxt", "node.js": "Node.js", "nodejs": "Node.js",
	"react.js": "React", "reactjs": "React", "vue.js": "Vue", "express": "Express",
	"express.js": "Express",
	"django": "Django", "flask": "Flask", "fastapi": "FastAPI", "spring": "Spring",
	"spring boot": "Spring Boot", "rails": "Rails", "ruby on rails": "Ruby on Rails",
	"laravel": "Laravel", ".net": ".NET", "asp.net": "ASP.NET", "rest": "REST",
	"grpc": "gRPC", "postgresql": "PostgreSQL", "postgres": "PostgreSQL",
	"mysql": "MySQL", "mongodb": "MongoDB", "redis": "Redis", "sqlite": "SQLite",
	"elasticsearch": "Elasticsearch", "kafka": "Kafka", "rabbitmq": "RabbitMQ",
	"docker": "Docker", "kubernetes": "Kubernetes", "k8s": "Kubernetes",
	"terraform": "Terraform", "ansible": "Ansible", "aws": "AWS", "azure": "Azure",
	"gcp": "GCP", "amazon web services": "AWS", "google cloud": "Google Cloud", "linux": "Linux", "git": "Git",
	"github": "GitHub", "gitlab": "GitLab", "jenkins": "Jenkins", "ci/cd": "CI/CD",
	"circleci": "CircleCI", "github actions": "GitHub Actions", "jira": "Jira",
	"figma": "Figma", "tailwind": "Tailwind CSS", "tailwind css": "Tailwind CSS",
	"bootstrap": "Bootstrap", "webpack": "Webpack", "vite": "Vite", "jest": "Jest",
	"cypress": "Cypress", "selenium": "Selenium", "pytest": "pytest", "pandas": "pandas",
	"numpy": "NumPy", "tensorflow": "TensorFlow", "pytorch": "PyTorch",
	"scikit-learn": "scikit-learn", "spark": "Spark", "hadoop": "Hadoop",
	"airflow": "Airflow", "snowflake": "Snowflake", "tableau": "Tableau",
	"power bi": "Power BI", "excel": "Excel", "firebase": "Firebase",
	"supabase": "Supabase", "prisma": "Prisma", "redux": "Redux", "jquery": "jQuery",
	"microservices": "Microservices", "machine learning": "Machine Learning",
	"deep learning": "Deep Learning", "nlp": "NLP", "agile": "Agile", "scrum": "Scrum",
	"nginx": "Nginx", "serverless": "Serverless", "lambda": "Lambda",
	"dynamodb": "DynamoDB", "s3": "S3", "ec2": "EC2", "oauth": "OAuth", "jwt": "JWT",
	"websockets": "WebSockets", "unity": "Unity", "flutter": "Flutter",
	"llm": "LLM", "langchain": "LangChain", "openai": "OpenAI", "vercel": "Vercel",
	"netlify": "Netlify", "heroku": "Heroku", "storybook": "Storybook", "npm": "npm",
	"yarn": "Yarn", "apollo": "Apollo",
	"postman": "Postman", "swagger": "Swagger", "openapi": "OpenAPI",
	"prometheus": "Prometheus", "grafana": "Grafana", "datadog": "Datadog",
	"helm": "Helm", "istio": "Istio", "cassandra": "Cassandra", "bigquery": "BigQuery",
}

// caseSensitiveTerms double as everyday English words and only count as a
// technology when written in their display form.
var caseSensitiveTerms = map[string]bool{
	"go": true, "rest": true, "express": true, "spring": true,
	"swift": true, "rust": true, "shell": true, "excel": true, "lambda": true,
	"unity": true, "dart": true, "agile": true, "scrum": true, "spark": true,
	"apollo": true, "helm": true, "vite": true, "jest": true, "rails": true,
	"snowflake": true, "serverless": true, "microservices": true, "redux": true,
	"flask": true, "express.js": true, "yarn": true, "git": true, "ruby": true,
	"java": true, "perl": true, "airflow": true, "prisma": true,
}

// keywordSet is a lower-case lookup table built from a keyword list
type keywordSet map[string]bool

func newKeywordSet(words []string) keywordSet {
	set := make(keywordSet, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

var (
	roleKeywordSet        = newKeywordSet(RoleKeywords)
	connectiveSet         = newKeywordSet(SentenceConnectives)
	leadingConnectiveSet  = newKeywordSet(LeadingConnectives)
	stopWordSet           = newKeywordSet(StopWords)
	institutionKeywordSet = newKeywordSet(InstitutionKeywords)
	pastTenseVerbSet      = newKeywordSet(PastTenseVerbs)
	placeKeywordSet       = newKeywordSet(PlaceKeywords)

	// techTerms is TechVocabulary's keys, longest first so compound names
	// are reported before their prefixes
	techTerms = sortedTerms(TechVocabulary)
)

func sortedTerms(vocabulary map[string]string) []string {
	terms := make([]string, 0, len(vocabulary))
	for term := range vocabulary {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})
	return terms
}

// containsTerm reports whether term occurs in text delimited by characters
// that cannot continue a word or a technology name.
func containsTerm(text, term string) bool {
	return indexTerm(text, term) >= 0
}

// indexTerm returns the byte offset of the first delimited occurrence of term
func indexTerm(text, term string) int {
	if term == "" {
		return -1
	}
	offset := 0
	for {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(term)
		if termBoundaryBefore(text, start) && termBoundaryAfter(text, end) {
			return start
		}
		offset = start + 1
	}
}

func termBoundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '-'
}

func termBoundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	if r == '.' {
		// "Node.js." ends a sentence; "Node.jsx" continues the word
		next, _ := utf8.DecodeRuneInString(text[end+1:])
		return end+1 >= len(text) || !unicode.IsLetter(next)
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '-'
}

// wordsOf lower-cases s and splits it into words with surrounding
// punctuation removed.
func wordsOf(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) && r != '+' && r != '#' && r != '/'
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// hasKeyword reports whether any single word of s, or any multi-word
// keyword, is in set.
func hasKeyword(s string, set keywordSet) bool {
	lower := strings.ToLower(s)
	for _, w := range wordsOf(lower) {
		if set[w] {
			return true
		}
	}
	for kw := range set {
		if strings.Contains(kw, " ") && containsTerm(lower, kw) {
			return true
		}
	}
	return false
}

// techHit is one technology mention found in free text
type techHit struct {
	name  string
	index int
}

// findTechTerms returns the display names of vocabulary terms mentioned in
// text, ordered by first occurrence.
func findTechTerms(text string) []techHit {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var hits []techHit
	for _, term := range techTerms {
		display := TechVocabulary[term]
		var idx int
		if caseSensitiveTerms[term] {
			idx = indexTerm(text, display)
		} else {
			idx = indexTerm(lower, term)
		}
		if idx < 0 || seen[display] {
			continue
		}
		seen[display] = true
		hits = append(hits, techHit{name: display, index: idx})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].index < hits[j].index
	})
	return hits
}

// mentionsTechnology reports whether text names at least one vocabulary term
func mentionsTechnology(text string) bool {
	return len(findTechTerms(text)) > 0
}
