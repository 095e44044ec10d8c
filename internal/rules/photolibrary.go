package rules

import (
	"github.com/apptriage/apptriage/internal/scancontext"
	"github.com/apptriage/apptriage/internal/sourcescan"
)

func newPhotoLibraryRule() Rule {
	return &photoLibraryRule{meta{
		id:         "photo-library-usage-description",
		name:       "Photo library usage description",
		category:   CategoryPrivacy,
		severity:   SeverityHigh,
		confidence: ConfidenceHigh,
		guideline:  "5.1.1",
		summary:    "Apps that read the photo library must declare NSPhotoLibraryUsageDescription.",
		fix:        "Add NSPhotoLibraryUsageDescription to the Info.plist, or adopt PHPickerViewController which needs no permission at all.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/nsphotolibraryusagedescription",
	}}
}

type photoLibraryRule struct{ meta }

func (r *photoLibraryRule) Evaluate(ctx *scancontext.Context) []Finding {
	usage := ctx.Usage()

	linked := ctx.HasFramework("Photos") || ctx.HasFramework("PhotosUI") ||
		usage.Imports("Photos") || usage.Imports("PhotosUI")
	apiSeen := usage.Has(sourcescan.CapabilityPhotoLibrary)

	sig := usageKeySignal{
		key:       "NSPhotoLibraryUsageDescription",
		triggered: linked || apiSeen,
		why:       "The project accesses the photo library, which requires a user-facing explanation.",
	}

	if !apiSeen {
		sig.ambiguous = true
		sig.rationale = "The Photos framework is linked but no photo library API was found in source, so severity and confidence are reduced."
		sig.why = "The Photos framework is linked, which usually indicates photo library access."
	}

	return evaluateUsageKey(r.meta, ctx, sig)
}
