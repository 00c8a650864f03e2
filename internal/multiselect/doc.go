// Package multiselect is the state core of the multi-select column filter.
//
// The filter keeps a working selection that is separate from the committed
// query until the user applies it. Every operation is a pure function that
// takes a [State] and returns the next one, so a UI layer only has to
// re-render after each call:
//
//	st := multiselect.Initial(s, committed)
//	st = multiselect.Open(s, st)
//	st = multiselect.Toggle(st, "HR")
//	st, committed = multiselect.Apply(s, st)
//
// [Resolve] turns a partially filled configuration into [Settings] once,
// using the [Defaults] table, so no behaviour code has to deal with absent
// labels. [Predicate] builds the row matcher that interprets a committed
// query.
package multiselect
