package parser

import "strings"

// listSpecFields are the canonical fields whose values are ordered lists.
// Rows resolving to one of these are routed through parseListValue.
var listSpecFields = map[string]bool{
	"Autofocus":     true,
	"ExposureModes": true,
	"MeteringModes": true,
	"FileFormat":    true,
	"Modes":         true,
	"DriveModes":    true,
}

// specLabelMapping translates lower-cased, trimmed HTML labels to canonical
// CameraSpecs field names. Multiple raw labels may map to the same field.
var specLabelMapping = map[string]string{
	// Dates & pricing
	"announced":         "Announced",
	"announcement date": "Announced",
	"msrp":              "MSRP",
	"price":             "BuyingOptions",
	"buying options":    "BuyingOptions",

	// Body & build
	"body type":               "BodyType",
	"body material":           "BodyMaterial",
	"dimensions":              "Dimensions",
	"weight (inc. batteries)": "WeightIncBatteries",
	"weight":                  "WeightIncBatteries",
	"durability":              "Durability",
	"environmentally sealed":  "EnvironmentallySealed",

	// Sensor
	"sensor type":             "SensorType",
	"sensor":                  "SensorType",
	"sensor size":             "SensorSize",
	"effective pixels":        "EffectivePixels",
	"megapixels":              "EffectivePixels",
	"processor":               "Processor",
	"image processor":         "Processor",
	"focal length multiplier": "FocalLengthMultiplier",
	"crop factor":             "FocalLengthMultiplier",
	"sensor photo detectors":  "SensorPhotoDetectors",

	// ISO
	"iso":                   "ISO",
	"iso sensitivity":       "ISO",
	"boosted iso maximum":   "BoostedISOMaximum",
	"boosted iso minimum":   "BoostedISOMinimum",
	"boosted iso (maximum)": "BoostedISOMaximum",
	"boosted iso (minimum)": "BoostedISOMinimum",
	"iso (boosted)":         "BoostedISOMaximum",
	"extended iso":          "BoostedISOMaximum",

	// Autofocus
	"autofocus":              "Autofocus",
	"af system":              "Autofocus",
	"autofocus assist lamp":  "AutofocusAssistLamp",
	"af assist lamp":         "AutofocusAssistLamp",
	"af assist":              "AutofocusAssistLamp",
	"number of focus points": "NumberOfFocusPoints",
	"focus points":           "NumberOfFocusPoints",

	// Exposure & metering
	"ae bracketing":            "AEBracketing",
	"auto exposure bracketing": "AEBracketing",
	"aperture priority":        "AperturePriority",
	"exposure compensation":    "ExposureCompensation",
	"exposure modes":           "ExposureModes",
	"manual exposure mode":     "ManualExposureMode",
	"metering modes":           "MeteringModes",
	"shutter priority":         "ShutterPriority",

	// Shutter
	"maximum shutter speed":              "MaximumShutterSpeed",
	"max shutter speed":                  "MaximumShutterSpeed",
	"maximum shutter speed (electronic)": "MaximumShutterSpeedElectronic",
	"minimum shutter speed":              "MinimumShutterSpeed",
	"min shutter speed":                  "MinimumShutterSpeed",

	// Screen
	"screen size":         "ScreenSize",
	"screen":              "ScreenSize",
	"lcd":                 "ScreenSize",
	"screen dots":         "ScreenDots",
	"screen resolution":   "ScreenDots",
	"screen type":         "ScreenType",
	"touch screen":        "TouchScreen",
	"articulated lcd":     "ArticulatedLCD",
	"articulating screen": "ArticulatedLCD",

	// Viewfinder
	"viewfinder type":          "ViewfinderType",
	"viewfinder":               "ViewfinderType",
	"viewfinder coverage":      "ViewfinderCoverage",
	"viewfinder magnification": "ViewfinderMagnification",
	"viewfinder resolution":    "ViewfinderResolution",
	"field of view":            "FieldOfView",

	// Video
	"format":              "Format",
	"video format":        "Format",
	"modes":               "Modes",
	"video modes":         "Modes",
	"resolutions":         "Resolutions",
	"video resolutions":   "Resolutions",
	"microphone":          "Microphone",
	"microphone port":     "MicrophonePort",
	"speaker":             "Speaker",
	"headphone port":      "HeadphonePort",
	"timelapse recording": "TimelapseRecording",

	// Image
	"color filter array":    "ColorFilterArray",
	"color filter":          "ColorFilterArray",
	"color space":           "ColorSpace",
	"color spaces":          "ColorSpace",
	"custom white balance":  "CustomWhiteBalance",
	"file format":           "FileFormat",
	"image ratio w:h":       "ImageRatioWh",
	"image ratio wh":        "ImageRatioWh",
	"aspect ratio":          "ImageRatioWh",
	"jpeg quality levels":   "JPEGQualityLevels",
	"max resolution":        "MaxResolution",
	"maximum resolution":    "MaxResolution",
	"other resolutions":     "OtherResolutions",
	"uncompressed format":   "UncompressedFormat",
	"raw format":            "UncompressedFormat",
	"wb bracketing":         "WBBracketing",
	"white balance presets": "WhiteBalancePresets",

	// Flash
	"built-in flash":     "BuiltInFlash",
	"built in flash":     "BuiltInFlash",
	"external flash":     "ExternalFlash",
	"flash modes":        "FlashModes",
	"flash range":        "FlashRange",
	"flash x-sync speed": "FlashXSyncSpeed",
	"flash x sync speed": "FlashXSyncSpeed",
	"flash sync speed":   "FlashXSyncSpeed",

	// Battery
	"battery":             "Battery",
	"battery description": "BatteryDescription",
	"battery life (cipa)": "BatteryLifeCIPA",
	"battery life":        "BatteryLifeCIPA",

	// Connectivity
	"usb":            "USB",
	"wireless":       "Wireless",
	"wifi":           "Wireless",
	"wi-fi":          "Wireless",
	"bluetooth":      "WirelessNotes",
	"wireless notes": "WirelessNotes",
	"gps":            "GPS",
	"gps notes":      "GPSNotes",
	"hdmi":           "HDMI",
	"remote control": "RemoteControl",
	"usb charging":   "USBCharging",

	// Lens & optics
	"lens mount": "LensMount",
	"mount":      "LensMount",

	// Storage
	"storage":       "StorageTypes",
	"storage types": "StorageTypes",
	"memory card":   "StorageTypes",

	// Shooting & other features
	"image stabilization":             "ImageStabilization",
	"cipa image stabilization rating": "CIPAImageStabilizationRating",
	"image stabilization notes":       "ImageStabilizationNotes",
	"continuous drive":                "ContinuousDrive",
	"drive modes":                     "DriveModes",
	"live view":                       "LiveView",
	"manual focus":                    "ManualFocus",
	"orientation sensor":              "OrientationSensor",
	"self-timer":                      "SelfTimer",
	"digital zoom":                    "DigitalZoom",
	"scene modes":                     "SceneModes",
	"subject / scene modes":           "SubjectSceneModes",
	"review preview":                  "ReviewPreview",
}

// NormalizeSpecLabel maps a raw HTML label to its canonical field name. The
// lookup is case- and surrounding-whitespace-insensitive. The second return
// is false when the label has no mapping; callers skip such rows.
func NormalizeSpecLabel(label string) (string, bool) {
	field, ok := specLabelMapping[strings.ToLower(strings.TrimSpace(label))]
	return field, ok
}

// IsListSpecField reports whether the canonical field holds a list value.
func IsListSpecField(field string) bool {
	return listSpecFields[field]
}
