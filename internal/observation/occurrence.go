package observation

// Occurrence is a parsed view of a single observation record, used by the
// splitters. The table row remains the source of truth for output.
type Occurrence struct {
	SpeciesID string
	Lon       float64
	Lat       float64
}

// Occurrences parses the lon/lat columns, and speciesId when present, into
// a typed slice aligned with table rows.
func (t *Table) Occurrences() ([]Occurrence, error) {
	if err := t.RequireColumns(ColLon, ColLat); err != nil {
		return nil, err
	}
	lons, err := t.Floats(ColLon)
	if err != nil {
		return nil, err
	}
	lats, err := t.Floats(ColLat)
	if err != nil {
		return nil, err
	}

	var species []string
	if t.HasColumn(ColSpeciesID) {
		species, err = t.Strings(ColSpeciesID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]Occurrence, t.Len())
	for i := range out {
		out[i] = Occurrence{Lon: lons[i], Lat: lats[i]}
		if species != nil {
			out[i].SpeciesID = species[i]
		}
	}
	return out, nil
}
