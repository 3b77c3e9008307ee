package xs

import (
	"fmt"

	"github.com/phil-mansfield/table"
)

// Leading columns of a material table. Scatter columns follow, one per
// destination group.
const (
	colAbsorption = iota
	colNuFission
	colFission
	colChi
	tableLeadColumns
)

// ReadMaterialTable reads a whitespace-separated column file holding one row
// per energy group: absorption, nu-fission, fission, chi, then the scatter
// cross section from the row's group into each destination group.
func ReadMaterialTable(name, fname string) (*Material, error) {
	lead, err := table.ReadTable(fname, []int{colAbsorption, colNuFission, colFission, colChi}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s: %v", ErrInvalidMaterial, name, fname, err)
	}
	ng := len(lead[colAbsorption])
	if ng == 0 {
		return nil, fmt.Errorf("%w %q: %s has no rows", ErrInvalidMaterial, name, fname)
	}

	idx := make([]int, ng)
	for to := range idx {
		idx[to] = tableLeadColumns + to
	}
	// scat[to][from]: column "to" read down the rows "from"
	scat, err := table.ReadTable(fname, idx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s: scatter columns: %v", ErrInvalidMaterial, name, fname, err)
	}
	return NewMaterial(name, lead[colAbsorption], lead[colNuFission], lead[colFission], lead[colChi], scat)
}

// LoadTable reads a material table and adds it to the library.
func (l *Library) LoadTable(name, fname string) (MaterialID, error) {
	m, err := ReadMaterialTable(name, fname)
	if err != nil {
		return NoMaterial, err
	}
	return l.Add(m)
}
