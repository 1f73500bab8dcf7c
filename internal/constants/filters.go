package constants

import "time"

// FilterAll disables the status or priority predicate of a task query.
const FilterAll = "all"

// DueSoonWindow is how far ahead of now a due date counts as due soon.
const DueSoonWindow = 3 * 24 * time.Hour
