// Package query turns list-request parameters into explicit SQL predicates
// over the tasks table.
package query

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
)

// Recognized task list parameters. Anything else is ignored.
const (
	ParamStatus             = "status"
	ParamTitle              = "title"
	ParamDescription        = "description"
	ParamDueDate            = "due_date"
	ParamDueDateAfter       = "due_date_after"
	ParamDueDateBefore      = "due_date_before"
	ParamStatusChangedAfter = "status_changed_after"
	ParamIsOverdue          = "is_overdue"
	ParamSearch             = "search"
	ParamOrdering           = "ordering"
)

const likeEscape = "!"

// DefaultOrder keeps insertion order when no ordering is requested.
const DefaultOrder = "id ASC"

// orderingFields maps public ordering keys to columns.
var orderingFields = map[string]string{
	"created_at":        "created_at",
	"due_date":          "due_date",
	"status_changed_at": "status_changed_at",
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	model.DateLayout,
}

// Predicate is one SQL condition with its bound arguments.
type Predicate struct {
	SQL  string
	Args []interface{}
}

// TaskFilter is the AND of its predicates, sorted by Order.
type TaskFilter struct {
	Predicates []Predicate
	Order      []string
}

// BuildTaskFilter builds the filter for ownerID's tasks from params. Every
// value of a repeated parameter adds its own predicate, so repeated values
// must all hold at once. now anchors is_overdue.
func BuildTaskFilter(ownerID uint, params url.Values, now time.Time) (*TaskFilter, error) {
	f := &TaskFilter{}
	verr := apperrors.NewValidationError()

	f.where("user_id = ?", ownerID)

	for _, v := range values(params, ParamStatus) {
		status := model.TaskStatus(v)
		if !status.Valid() {
			verr.Add(ParamStatus, fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", v))
			continue
		}
		f.where("status = ?", string(status))
	}

	for _, v := range values(params, ParamTitle) {
		f.where(containsSQL("title"), containsPattern(v))
	}
	for _, v := range values(params, ParamDescription) {
		f.where(containsSQL("description"), containsPattern(v))
	}

	f.dateFilter(params, ParamDueDate, "due_date = ?", verr)
	f.dateFilter(params, ParamDueDateAfter, "due_date >= ?", verr)
	f.dateFilter(params, ParamDueDateBefore, "due_date <= ?", verr)

	for _, v := range values(params, ParamStatusChangedAfter) {
		t, err := parseTime(v)
		if err != nil {
			verr.Add(ParamStatusChangedAfter, apperrors.MsgInvalidTime)
			continue
		}
		f.where("status_changed_at >= ?", t.UTC())
	}

	for _, v := range values(params, ParamIsOverdue) {
		if !strings.EqualFold(v, "true") {
			continue
		}
		f.where("due_date < ? AND status IN ?", model.NewDate(now).String(), openStatuses())
	}

	for _, v := range values(params, ParamSearch) {
		for _, term := range searchTerms(v) {
			pattern := containsPattern(term)
			f.where("("+containsSQL("title")+" OR "+containsSQL("description")+")", pattern, pattern)
		}
	}

	f.Order = ordering(params[ParamOrdering])

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// Scope applies the filter's predicates and ordering to db.
func (f *TaskFilter) Scope(db *gorm.DB) *gorm.DB {
	for _, p := range f.Predicates {
		db = db.Where(p.SQL, p.Args...)
	}
	return db
}

// OrderScope applies only the ordering.
func (f *TaskFilter) OrderScope(db *gorm.DB) *gorm.DB {
	for _, o := range f.Order {
		db = db.Order(o)
	}
	return db
}

func (f *TaskFilter) where(sql string, args ...interface{}) {
	f.Predicates = append(f.Predicates, Predicate{SQL: sql, Args: args})
}

func (f *TaskFilter) dateFilter(params url.Values, name, sql string, verr *apperrors.ValidationError) {
	for _, v := range values(params, name) {
		d, err := model.ParseDate(v)
		if err != nil {
			verr.Add(name, apperrors.MsgInvalidDate)
			continue
		}
		f.where(sql, d.String())
	}
}

// values returns the non-empty values of name; empty values are treated as absent.
func values(params url.Values, name string) []string {
	var out []string
	for _, v := range params[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func containsSQL(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + likeEscape + "'"
}

func containsPattern(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

func searchTerms(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func openStatuses() []string {
	var out []string
	for _, s := range model.TaskStatuses {
		if s.Open() {
			out = append(out, string(s))
		}
	}
	return out
}

func parseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func ordering(raw []string) []string {
	var order []string
	for _, v := range raw {
		for _, key := range strings.Split(v, ",") {
			key = strings.TrimSpace(key)
			direction := "ASC"
			if strings.HasPrefix(key, "-") {
				direction = "DESC"
				key = key[1:]
			}
			column, ok := orderingFields[key]
			if !ok {
				continue
			}
			order = append(order, column+" "+direction)
		}
	}
	return append(order, DefaultOrder)
}
