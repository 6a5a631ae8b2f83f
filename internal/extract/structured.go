package extract

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/htran/syllabuscal/internal/model"
)

// syllabusDocument is the structured syllabus schema. Tasks and
// WeeklyTopics are pointers so that an absent field (schema not recognized)
// is distinguishable from a present-but-empty list.
type syllabusDocument struct {
	CourseName   string          `json:"course_name"`
	Tasks        *[]syllabusTask `json:"tasks"`
	WeeklyTopics *[]weeklyTopic  `json:"weekly_topics"`
}

// syllabusTask is a single task entry referencing a week by number.
type syllabusTask struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	WeekNumber int    `json:"week_number"`
}

// weeklyTopic describes the class dates of one week as free text,
// e.g. "Mon, Oct 6; Wed, Oct 8".
type weeklyTopic struct {
	Week  int    `json:"week"`
	Dates string `json:"dates"`
}

// monthDayRe matches a "Month Day" token inside a weekly-topic date string.
var monthDayRe = regexp.MustCompile(`([A-Za-z]+)\s+(\d+)`)

// extractStructured attempts to parse text as a syllabus document and
// derive one deadline per task by cross-referencing the task's week number
// against the weekly topics. The right-most "Month Day" token in the
// week's date string wins, so the last class of the week is treated as the
// deadline. The second return value reports whether the schema was
// recognized at all; when false the caller falls through to the pattern
// cascade, which is the designed fallback rather than an error.
func extractStructured(text string, year int) ([]model.Deadline, bool) {
	var doc syllabusDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, false
	}
	if doc.Tasks == nil || doc.WeeklyTopics == nil {
		return nil, false
	}

	datesByWeek := make(map[int]string, len(*doc.WeeklyTopics))
	for _, topic := range *doc.WeeklyTopics {
		datesByWeek[topic.Week] = topic.Dates
	}

	deadlines := make([]model.Deadline, 0, len(*doc.Tasks))
	seen := make(dedupSet)

	for _, task := range *doc.Tasks {
		dates, ok := datesByWeek[task.WeekNumber]
		if !ok {
			continue
		}

		matches := monthDayRe.FindAllStringSubmatch(dates, -1)
		if len(matches) == 0 {
			continue
		}
		last := matches[len(matches)-1]

		month, ok := monthFromAbbrev(last[1])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(last[2])
		if !validDay(day) {
			continue
		}

		d := model.Deadline{
			Title:  capitalize(task.Title),
			Date:   normalizeDate(year, month, day),
			Type:   canonicalType(task.Type),
			Course: doc.CourseName,
		}
		if !seen.add(d) {
			continue
		}
		deadlines = append(deadlines, d)
	}

	return deadlines, true
}
