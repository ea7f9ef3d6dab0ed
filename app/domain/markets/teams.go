package markets

import "courtside.ai/data-service/app/domain/catalog"

// teamNameToTricode maps upstream event-title team names to tricodes, built
// from the catalog's team directory so both stay in step.
var teamNameToTricode = func() map[string]string {
	m := make(map[string]string)
	for _, team := range catalog.Teams() {
		m[team.Name] = team.Tricode
	}
	return m
}()
