package rules

import "github.com/apptriage/apptriage/internal/scancontext"

func newBluetoothRule() Rule {
	return &bluetoothRule{meta{
		id:         "bluetooth-usage-description",
		name:       "Bluetooth usage description",
		category:   CategoryPrivacy,
		severity:   SeverityMedium,
		confidence: ConfidenceHigh,
		guideline:  "5.1.1",
		summary:    "Apps that use Core Bluetooth must declare NSBluetoothAlwaysUsageDescription.",
		fix:        "Add NSBluetoothAlwaysUsageDescription to the Info.plist explaining what the app does with Bluetooth.",
		docURL:     "https://developer.apple.com/documentation/bundleresources/information_property_list/nsbluetoothalwaysusagedescription",
	}}
}

type bluetoothRule struct{ meta }

func (r *bluetoothRule) Evaluate(ctx *scancontext.Context) []Finding {
	linked := ctx.HasFramework("CoreBluetooth") || ctx.Usage().Imports("CoreBluetooth")

	return evaluateUsageKey(r.meta, ctx, usageKeySignal{
		key:       "NSBluetoothAlwaysUsageDescription",
		triggered: linked,
		why:       "CoreBluetooth is linked, and apps are rejected at upload when this key is absent.",
	})
}
