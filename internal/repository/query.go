package repository

import (
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventhub/eventhub-go/internal/model"
)

// Defaults applied when list parameters are absent.
const (
	DefaultSort  = "createdAt:desc"
	DefaultPage  = "1"
	DefaultLimit = "10"
)

// separatorRun matches the separator characters that collapse into a
// wildcard when matching titles: slash, hyphen, whitespace.
var separatorRun = regexp.MustCompile(`[/\-\s]+`)

// EventQuery is a filter/sort/pagination plan for the events collection.
type EventQuery struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
	Page   int64
}

// BuildEventQuery translates raw list parameters into a query plan scoped to
// the caller: admins see every event, everyone else only their own.
func BuildEventQuery(caller model.AuthUser, params model.ListEventsParams) EventQuery {
	filter := bson.M{}
	if !caller.IsAdmin() {
		filter["userId"] = caller.ID
	}

	if title := strings.TrimSpace(params.Title); title != "" {
		filter["title"] = primitive.Regex{Pattern: flexibleTitlePattern(title), Options: "i"}
	}
	if params.Date != "" {
		filter["date"] = dateFilter(params.Date)
	}
	if params.Location != "" {
		// Unlike title, the location value is not escaped; metacharacters
		// in it are interpreted by the regex engine.
		filter["location"] = primitive.Regex{Pattern: params.Location, Options: "i"}
	}

	sortField, sortOrder := parseSort(params.Sort)
	page := parsePositive(params.Page, DefaultPage)
	limit := parsePositive(params.Limit, DefaultLimit)

	return EventQuery{
		Filter: filter,
		Sort:   bson.D{{Key: sortField, Value: sortOrder}},
		Skip:   (page - 1) * limit,
		Limit:  limit,
		Page:   page,
	}
}

// flexibleTitlePattern escapes regex metacharacters in the literal title,
// then collapses runs of separators into wildcards so that "10-12" also
// matches "10/12" and "10 12".
func flexibleTitlePattern(title string) string {
	return separatorRun.ReplaceAllString(regexp.QuoteMeta(title), ".*")
}

// dateFilter parses the date parameter for an exact-equality match. An
// unparseable value is matched as the raw string, which never equals a
// stored timestamp.
func dateFilter(raw string) interface{} {
	if t, err := model.ParseEventDate(raw); err == nil {
		return t
	}
	return raw
}

// parseSort splits a "field:direction" value on the first colon. Only "desc"
// selects descending order; the field name is passed through uninterpreted.
func parseSort(sort string) (string, int) {
	if sort == "" {
		sort = DefaultSort
	}
	field, direction, _ := strings.Cut(sort, ":")
	order := 1
	if direction == "desc" {
		order = -1
	}
	return field, order
}

// parsePositive parses a page or limit value, falling back to the default on
// a missing value and to 1 on anything non-numeric or below 1.
func parsePositive(raw, fallback string) int64 {
	if raw == "" {
		raw = fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		n = 1
	}
	return int64(n)
}
