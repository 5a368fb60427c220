// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/jobdash/internal/listing"
)

// SampleCSV is a small listings export. Of its eight rows one carries the
// sentinel salary, one an hourly rate and one an annual salary far enough
// above the rest to be trimmed as an outlier.
const SampleCSV = `title,salary,location,platform,company
Senior Data Analyst,"$80,000-$100,000 a year","Austin, TX",LinkedIn,Acme
Junior Marketing Analyst,"$50,000 a year","New York, NY",Indeed,Globex
Data Engineer,"$300,000-$340,000 a year",Anywhere,LinkedIn,Initech
Lead Financial Analyst,$40-$60 an hour,"Chicago, IL",Glassdoor,Umbrella
Data Analyst,Not specified,United States,Indeed,Hooli
Senior Healthcare Data Analyst,"$95,000 a year","Boston, MA",LinkedIn,Acme
Sr. Data Scientist,"$150,000-$170,000 a year","Austin, TX",ZipRecruiter,Stark
Junior Data Analyst,"$60,000-$70,000 a year",Remote,Indeed,Globex
`

// SampleRaw returns the rows of SampleCSV as raw records.
func SampleRaw() []listing.RawRecord {
	rows := []listing.RawRecord{
		{Title: "Senior Data Analyst", Salary: "$80,000-$100,000 a year", Location: "Austin, TX", Platform: "LinkedIn"},
		{Title: "Junior Marketing Analyst", Salary: "$50,000 a year", Location: "New York, NY", Platform: "Indeed"},
		{Title: "Data Engineer", Salary: "$300,000-$340,000 a year", Location: "Anywhere", Platform: "LinkedIn"},
		{Title: "Lead Financial Analyst", Salary: "$40-$60 an hour", Location: "Chicago, IL", Platform: "Glassdoor"},
		{Title: "Data Analyst", Salary: "Not specified", Location: "United States", Platform: "Indeed"},
		{Title: "Senior Healthcare Data Analyst", Salary: "$95,000 a year", Location: "Boston, MA", Platform: "LinkedIn"},
		{Title: "Sr. Data Scientist", Salary: "$150,000-$170,000 a year", Location: "Austin, TX", Platform: "ZipRecruiter"},
		{Title: "Junior Data Analyst", Salary: "$60,000-$70,000 a year", Location: "Remote", Platform: "Indeed"},
	}
	companies := []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Acme", "Stark", "Globex"}
	for i := range rows {
		rows[i].Extra = map[string]string{"company": companies[i]}
	}
	return rows
}

// SampleSkillsCSV is a skills table keyed by level label.
const SampleSkillsCSV = `des_category_level,Top 1 Skills,Top 2 Skills,Top 3 Skills
Junior Data Analysts,"['SQL', 'Excel']",Python,Tableau
Senior Data Analysts,SQL,"['Python', 'R']",Power BI
Lead Data Analysts,Leadership,SQL,Stakeholder Management
`

// WriteFile writes content to name under dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
