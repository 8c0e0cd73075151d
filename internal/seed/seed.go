// Package seed populates the record store with generated sample data:
// a fixed job catalog, randomized candidates, and assessment templates
// for the first few jobs.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zulandar/talentflow/internal/db"
	"github.com/zulandar/talentflow/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Opts sizes the generated data. A non-zero Seed makes generation
// reproducible.
type Opts struct {
	Candidates  int
	Assessments int
	Seed        int64
}

// Result reports what was written.
type Result struct {
	Jobs        int
	Candidates  int
	Assessments int
	Skipped     bool
}

// Seed populates an empty store. It is idempotent: when jobs or
// candidates already exist it does nothing and reports Skipped.
func Seed(gdb *gorm.DB, opts Opts) (*Result, error) {
	var jobCount, candidateCount int64
	if err := gdb.Model(&models.Job{}).Count(&jobCount).Error; err != nil {
		return nil, fmt.Errorf("seed: count jobs: %w", err)
	}
	if err := gdb.Model(&models.Candidate{}).Count(&candidateCount).Error; err != nil {
		return nil, fmt.Errorf("seed: count candidates: %w", err)
	}
	if jobCount > 0 || candidateCount > 0 {
		return &Result{Skipped: true}, nil
	}

	src := opts.Seed
	if src == 0 {
		src = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(src))
	now := time.Now().UTC()

	jobs := sampleJobs(now)
	if err := gdb.Create(&jobs).Error; err != nil {
		return nil, fmt.Errorf("seed: jobs: %w", err)
	}

	candidates := generateCandidates(rng, jobs, opts.Candidates, now)
	res := &Result{Jobs: len(jobs)}
	if len(candidates) > 0 {
		if err := gdb.CreateInBatches(&candidates, 200).Error; err != nil {
			return nil, fmt.Errorf("seed: candidates: %w", err)
		}
		res.Candidates = len(candidates)
	}

	n := opts.Assessments
	if n > len(jobs) {
		n = len(jobs)
	}
	for i := 0; i < n; i++ {
		a := assessmentFor(jobs[i], now)
		if err := gdb.Create(&a).Error; err != nil {
			return nil, fmt.Errorf("seed: assessment for %s: %w", jobs[i].ID, err)
		}
		res.Assessments++
	}
	return res, nil
}

// Reset clears every table and reseeds from scratch.
func Reset(gdb *gorm.DB, opts Opts) (*Result, error) {
	if err := db.ClearAll(gdb); err != nil {
		return nil, fmt.Errorf("seed: reset: %w", err)
	}
	return Seed(gdb, opts)
}

// sampleJobs is the fixed catalog. Order values are 1-based ranks;
// slugs are treated as unique within the catalog.
func sampleJobs(now time.Time) []models.Job {
	type row struct {
		title, desc, location, salary string
		tags, requirements            []string
	}
	rows := []row{
		{
			title:        "Senior Frontend Developer",
			desc:         "Build rich user experiences for the hiring platform.",
			location:     "Bangalore, India",
			salary:       "₹15,00,000 - ₹25,00,000",
			tags:         []string{"React", "TypeScript", "Frontend", "Senior"},
			requirements: []string{"5+ years React experience", "TypeScript proficiency", "Testing experience"},
		},
		{
			title:        "Backend Engineer",
			desc:         "Join our backend team to build scalable server-side applications.",
			location:     "Mumbai, India",
			salary:       "₹12,00,000 - ₹18,00,000",
			tags:         []string{"Go", "Python", "Backend", "API"},
			requirements: []string{"3+ years backend development", "Database design", "API development"},
		},
		{
			title:        "DevOps Engineer",
			desc:         "Scale our infrastructure and improve deployment processes.",
			location:     "Delhi, India",
			salary:       "₹14,00,000 - ₹20,00,000",
			tags:         []string{"AWS", "Docker", "Kubernetes", "CI/CD"},
			requirements: []string{"AWS experience", "Container orchestration", "Monitoring tools"},
		},
		{
			title:        "Product Manager",
			desc:         "Lead product strategy across cross-functional teams.",
			location:     "Pune, India",
			salary:       "₹18,00,000 - ₹28,00,000",
			tags:         []string{"Product", "Strategy", "Leadership"},
			requirements: []string{"3+ years PM experience", "Technical background", "Analytics skills"},
		},
		{
			title:        "UX Designer",
			desc:         "Create intuitive and beautiful user experiences.",
			location:     "Chennai, India",
			salary:       "₹10,00,000 - ₹15,00,000",
			tags:         []string{"Design", "User Research", "Figma"},
			requirements: []string{"Portfolio required", "Figma proficiency", "User research"},
		},
		{
			title:        "Data Scientist",
			desc:         "Apply machine learning to complex hiring-funnel problems.",
			location:     "Hyderabad, India",
			salary:       "₹16,00,000 - ₹24,00,000",
			tags:         []string{"Machine Learning", "Python", "Statistics"},
			requirements: []string{"MS in relevant field", "Python/R proficiency", "Statistics background"},
		},
		{
			title:        "Mobile Developer",
			desc:         "Build cross-platform mobile applications.",
			location:     "Bangalore, India",
			salary:       "₹12,00,000 - ₹17,00,000",
			tags:         []string{"React Native", "Mobile", "iOS", "Android"},
			requirements: []string{"React Native experience", "Mobile UI/UX"},
		},
		{
			title:        "QA Engineer",
			desc:         "Own test automation and release quality.",
			location:     "Noida, India",
			salary:       "₹8,00,000 - ₹14,00,000",
			tags:         []string{"Testing", "Automation", "Selenium"},
			requirements: []string{"Test automation frameworks", "API testing"},
		},
		{
			title:        "Engineering Manager",
			desc:         "Grow and lead a team of product engineers.",
			location:     "Gurgaon, India",
			salary:       "₹30,00,000 - ₹45,00,000",
			tags:         []string{"Leadership", "Engineering", "Hiring"},
			requirements: []string{"2+ years managing engineers", "Strong technical background"},
		},
		{
			title:        "Technical Writer",
			desc:         "Document APIs and internal platforms.",
			location:     "Mumbai, India",
			salary:       "₹10,00,000 - ₹16,00,000",
			tags:         []string{"Documentation", "APIs", "Writing"},
			requirements: []string{"API documentation experience", "Clear written English"},
		},
	}

	jobs := make([]models.Job, len(rows))
	for i, r := range rows {
		jobs[i] = models.Job{
			ID:           fmt.Sprintf("job-%d", i+1),
			Title:        r.title,
			Slug:         slugOf(r.title),
			Status:       models.JobStatusActive,
			Tags:         r.tags,
			SortOrder:    i + 1,
			Description:  r.desc,
			Requirements: r.requirements,
			Location:     r.location,
			Salary:       r.salary,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return jobs
}

var firstNames = []string{
	"Arjun", "Rajesh", "Vikram", "Amit", "Rahul", "Ankit", "Deepak", "Nikhil",
	"Rohit", "Gaurav", "Ravi", "Sandeep", "Manoj", "Kiran", "Naveen", "Pradeep",
	"Priya", "Anita", "Sunita", "Kavita", "Meera", "Ritu", "Neha", "Pooja",
	"Shilpa", "Deepa", "Nisha", "Anjali", "Rashmi", "Vandana", "Preeti", "Madhuri",
}

var lastNames = []string{
	"Sharma", "Verma", "Gupta", "Kumar", "Singh", "Patel", "Yadav", "Shah",
	"Jain", "Reddy", "Mishra", "Pandey", "Rao", "Joshi", "Nair", "Iyer",
	"Mehta", "Saxena", "Tiwari", "Banerjee", "Das", "Ghosh", "Kulkarni", "Menon",
}

func generateCandidates(rng *rand.Rand, jobs []models.Job, n int, now time.Time) []models.Candidate {
	candidates := make([]models.Candidate, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		job := jobs[rng.Intn(len(jobs))]

		c := models.Candidate{
			ID:        fmt.Sprintf("candidate-%d-%06d", now.UnixMilli(), i),
			Name:      first + " " + last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", lower(first), lower(last), i),
			Phone:     fmt.Sprintf("+91-%d-%d-%d", 100+rng.Intn(900), 100+rng.Intn(900), 1000+rng.Intn(9000)),
			Stage:     models.Stages[rng.Intn(len(models.Stages))],
			JobID:     job.ID,
			LinkedIn:  fmt.Sprintf("https://linkedin.com/in/%s-%s-%d", lower(first), lower(last), i),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if rng.Float64() > 0.7 {
			c.Portfolio = fmt.Sprintf("https://%s-%s.dev", lower(first), lower(last))
		}
		if rng.Float64() > 0.8 {
			c.Notes = fmt.Sprintf("Strong candidate with %d years of experience.", 1+rng.Intn(5))
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// assessmentFor builds the standard three-section screening template
// bound to the job.
func assessmentFor(job models.Job, now time.Time) models.Assessment {
	minExp, maxExp := 0.0, 40.0
	maxShort := 200
	maxLong := 2000

	sections := []models.AssessmentSection{
		{
			ID:          "sec-technical",
			Title:       "Technical Skills",
			Description: "Evaluation of technical knowledge for " + job.Title + ".",
			Order:       1,
			Questions: []models.AssessmentQuestion{
				{
					ID: "tech-1", Type: models.QuestionSingleChoice, Order: 1, Required: true,
					Title:   "How many years of experience do you have with the primary technology for this role?",
					Options: []string{"Less than 1 year", "1-2 years", "3-5 years", "5+ years"},
				},
				{
					ID: "tech-2", Type: models.QuestionMultiChoice, Order: 2, Required: true,
					Title:   "Which of the following technologies are you familiar with?",
					Options: []string{"JavaScript", "TypeScript", "Go", "Python", "AWS", "Docker", "Kubernetes", "PostgreSQL"},
				},
				{
					ID: "tech-3", Type: models.QuestionNumeric, Order: 3, Required: true,
					Title: "Total years of professional experience.",
					Min:   &minExp, Max: &maxExp,
				},
				{
					ID: "tech-4", Type: models.QuestionLongText, Order: 4,
					Title:     "Describe the most complex system you have built.",
					MaxLength: &maxLong,
					Conditional: &models.QuestionCondition{
						QuestionID: "tech-1",
						Operator:   "not-equals",
						Value:      "Less than 1 year",
					},
				},
			},
		},
		{
			ID:    "sec-collaboration",
			Title: "Communication & Collaboration",
			Order: 2,
			Questions: []models.AssessmentQuestion{
				{
					ID: "collab-1", Type: models.QuestionSingleChoice, Order: 1, Required: true,
					Title:   "What type of work environment do you prefer?",
					Options: []string{"Fully remote", "Hybrid", "Office-first"},
				},
				{
					ID: "collab-2", Type: models.QuestionShortText, Order: 2,
					Title:     "How do you prefer to receive feedback?",
					MaxLength: &maxShort,
				},
			},
		},
		{
			ID:    "sec-role",
			Title: "Role-Specific Questions",
			Order: 3,
			Questions: []models.AssessmentQuestion{
				{
					ID: "role-1", Type: models.QuestionLongText, Order: 1, Required: true,
					Title:     "Why are you interested in the " + job.Title + " position?",
					MaxLength: &maxLong,
				},
				{
					ID: "role-2", Type: models.QuestionFileUpload, Order: 2,
					Title: "Attach a relevant work sample.",
				},
			},
		},
	}

	return models.Assessment{
		ID:          "assessment-" + job.ID,
		JobID:       job.ID,
		Title:       job.Title + " Screening",
		Description: "Standard screening assessment for " + job.Title + ".",
		Sections:    datatypes.NewJSONType(sections),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func slugOf(title string) string {
	b := []byte(lower(title))
	for i := range b {
		if !(b[i] >= 'a' && b[i] <= 'z' || b[i] >= '0' && b[i] <= '9') {
			b[i] = '-'
		}
	}
	out := make([]byte, 0, len(b))
	lastHyphen := true
	for _, c := range b {
		if c == '-' {
			if !lastHyphen {
				out = append(out, c)
			}
			lastHyphen = true
			continue
		}
		out = append(out, c)
		lastHyphen = false
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}
