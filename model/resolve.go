package model

import (
	"errors"
)

// Resolve cuts a view for every region in layout out of blob.
//
// Every entry is attempted, in layout order. Entries that fail the bounds
// check, name an unknown region, repeat a region or disagree with the
// topology size leave their region unresolved and add an error to err.
// Regions the layout never mentions are unresolved as well. A non-nil err
// therefore means partial resolution, not failure: views holds every region
// that did resolve.
func Resolve(blob Blob, layout []RegionSpec) (views [REGION_COUNT]View, err error) {
	var errs []error
	var seen [REGION_COUNT]bool

	length := blob.Len()

	for _, spec := range layout {
		region := spec.Region
		if !region.Valid() {
			errs = append(errs, ErrRegionInvalid(region))
			continue
		}

		if seen[region] {
			errs = append(errs, ErrRegionDuplicate(region))
			continue
		}
		seen[region] = true

		if spec.Size != region.Size() {
			errs = append(errs, ErrRegionSize{Region: region, Size: spec.Size})
			continue
		}

		if !Valid(spec.Offset, spec.Size, length) {
			errs = append(errs, &ErrOutOfBounds{
				Region: region,
				Offset: spec.Offset,
				Size:   spec.Size,
				Length: length,
			})
			continue
		}

		end := spec.Offset + spec.Size
		views[region] = View{
			data:     blob[spec.Offset:end:end],
			resolved: true,
		}
	}

	for region, ok := range seen {
		if !ok {
			errs = append(errs, ErrRegionMissing(region))
		}
	}

	err = errors.Join(errs...)

	return
}
