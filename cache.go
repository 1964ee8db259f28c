package nport

// HoldingsCache caches assembled reports by CIK. The lookup pipeline is
// unaware of caching; the web layer consults the cache before calling the
// service and stores results after. Implementations expire entries on
// their own schedule.
type HoldingsCache interface {
	// Get returns the cached report for cik, if present and fresh.
	Get(cik CIK) (*HoldingsReport, bool)

	// Set stores the report for cik.
	Set(cik CIK, report *HoldingsReport)
}
