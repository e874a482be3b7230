package export

import "errors"

// ErrNotPlottable marks histograms whose layout has no hbook
// counterpart. Such histograms still export as JSON documents.
var ErrNotPlottable = errors.New("histogram layout not plottable")
