package models

import "reflect"

// CameraSpecs is the canonical specification schema. Field declaration order
// is alphabetical so that YAML and JSON output emit keys in sorted order.
// Scalar fields default to "" and list fields to an empty slice; every field
// is present in every serialized record.
type CameraSpecs struct {
	AEBracketing                  string   `yaml:"AEBracketing" json:"AEBracketing"`
	Announced                     string   `yaml:"Announced" json:"Announced"`
	AperturePriority              string   `yaml:"AperturePriority" json:"AperturePriority"`
	ArticulatedLCD                string   `yaml:"ArticulatedLCD" json:"ArticulatedLCD"`
	Autofocus                     []string `yaml:"Autofocus" json:"Autofocus"`
	AutofocusAssistLamp           string   `yaml:"AutofocusAssistLamp" json:"AutofocusAssistLamp"`
	Battery                       string   `yaml:"Battery" json:"Battery"`
	BatteryDescription            string   `yaml:"BatteryDescription" json:"BatteryDescription"`
	BatteryLifeCIPA               string   `yaml:"BatteryLifeCIPA" json:"BatteryLifeCIPA"`
	BodyMaterial                  string   `yaml:"BodyMaterial" json:"BodyMaterial"`
	BodyType                      string   `yaml:"BodyType" json:"BodyType"`
	BoostedISOMaximum             string   `yaml:"BoostedISOMaximum" json:"BoostedISOMaximum"`
	BoostedISOMinimum             string   `yaml:"BoostedISOMinimum" json:"BoostedISOMinimum"`
	BuiltInFlash                  string   `yaml:"BuiltInFlash" json:"BuiltInFlash"`
	BuyingOptions                 string   `yaml:"BuyingOptions" json:"BuyingOptions"`
	CIPAImageStabilizationRating  string   `yaml:"CIPAImageStabilizationRating" json:"CIPAImageStabilizationRating"`
	ColorFilterArray              string   `yaml:"ColorFilterArray" json:"ColorFilterArray"`
	ColorSpace                    string   `yaml:"ColorSpace" json:"ColorSpace"`
	ContinuousDrive               string   `yaml:"ContinuousDrive" json:"ContinuousDrive"`
	CustomWhiteBalance            string   `yaml:"CustomWhiteBalance" json:"CustomWhiteBalance"`
	DigitalZoom                   string   `yaml:"DigitalZoom" json:"DigitalZoom"`
	Dimensions                    string   `yaml:"Dimensions" json:"Dimensions"`
	DriveModes                    []string `yaml:"DriveModes" json:"DriveModes"`
	Durability                    string   `yaml:"Durability" json:"Durability"`
	EffectivePixels               string   `yaml:"EffectivePixels" json:"EffectivePixels"`
	EnvironmentallySealed         string   `yaml:"EnvironmentallySealed" json:"EnvironmentallySealed"`
	ExposureCompensation          string   `yaml:"ExposureCompensation" json:"ExposureCompensation"`
	ExposureModes                 []string `yaml:"ExposureModes" json:"ExposureModes"`
	ExternalFlash                 string   `yaml:"ExternalFlash" json:"ExternalFlash"`
	FieldOfView                   string   `yaml:"FieldOfView" json:"FieldOfView"`
	FileFormat                    []string `yaml:"FileFormat" json:"FileFormat"`
	FlashModes                    string   `yaml:"FlashModes" json:"FlashModes"`
	FlashRange                    string   `yaml:"FlashRange" json:"FlashRange"`
	FlashXSyncSpeed               string   `yaml:"FlashXSyncSpeed" json:"FlashXSyncSpeed"`
	FocalLengthMultiplier         string   `yaml:"FocalLengthMultiplier" json:"FocalLengthMultiplier"`
	Format                        string   `yaml:"Format" json:"Format"`
	GPS                           string   `yaml:"GPS" json:"GPS"`
	GPSNotes                      string   `yaml:"GPSNotes" json:"GPSNotes"`
	HDMI                          string   `yaml:"HDMI" json:"HDMI"`
	HeadphonePort                 string   `yaml:"HeadphonePort" json:"HeadphonePort"`
	ISO                           string   `yaml:"ISO" json:"ISO"`
	ImageRatioWh                  string   `yaml:"ImageRatioWh" json:"ImageRatioWh"`
	ImageStabilization            string   `yaml:"ImageStabilization" json:"ImageStabilization"`
	ImageStabilizationNotes       string   `yaml:"ImageStabilizationNotes" json:"ImageStabilizationNotes"`
	JPEGQualityLevels             string   `yaml:"JPEGQualityLevels" json:"JPEGQualityLevels"`
	LensMount                     string   `yaml:"LensMount" json:"LensMount"`
	LiveView                      string   `yaml:"LiveView" json:"LiveView"`
	MSRP                          string   `yaml:"MSRP" json:"MSRP"`
	ManualExposureMode            string   `yaml:"ManualExposureMode" json:"ManualExposureMode"`
	ManualFocus                   string   `yaml:"ManualFocus" json:"ManualFocus"`
	MaxResolution                 string   `yaml:"MaxResolution" json:"MaxResolution"`
	MaximumShutterSpeed           string   `yaml:"MaximumShutterSpeed" json:"MaximumShutterSpeed"`
	MaximumShutterSpeedElectronic string   `yaml:"MaximumShutterSpeedElectronic" json:"MaximumShutterSpeedElectronic"`
	MeteringModes                 []string `yaml:"MeteringModes" json:"MeteringModes"`
	Microphone                    string   `yaml:"Microphone" json:"Microphone"`
	MicrophonePort                string   `yaml:"MicrophonePort" json:"MicrophonePort"`
	MinimumShutterSpeed           string   `yaml:"MinimumShutterSpeed" json:"MinimumShutterSpeed"`
	Modes                         []string `yaml:"Modes" json:"Modes"`
	NumberOfFocusPoints           string   `yaml:"NumberOfFocusPoints" json:"NumberOfFocusPoints"`
	NumberOfLenses                string   `yaml:"NumberOfLenses" json:"NumberOfLenses"`
	OrientationSensor             string   `yaml:"OrientationSensor" json:"OrientationSensor"`
	OtherResolutions              string   `yaml:"OtherResolutions" json:"OtherResolutions"`
	Processor                     string   `yaml:"Processor" json:"Processor"`
	RemoteControl                 string   `yaml:"RemoteControl" json:"RemoteControl"`
	Resolutions                   string   `yaml:"Resolutions" json:"Resolutions"`
	ReviewPreview                 string   `yaml:"ReviewPreview" json:"ReviewPreview"`
	SceneModes                    string   `yaml:"SceneModes" json:"SceneModes"`
	ScreenDots                    string   `yaml:"ScreenDots" json:"ScreenDots"`
	ScreenSize                    string   `yaml:"ScreenSize" json:"ScreenSize"`
	ScreenType                    string   `yaml:"ScreenType" json:"ScreenType"`
	SelfTimer                     string   `yaml:"SelfTimer" json:"SelfTimer"`
	SensorPhotoDetectors          string   `yaml:"SensorPhotoDetectors" json:"SensorPhotoDetectors"`
	SensorSize                    string   `yaml:"SensorSize" json:"SensorSize"`
	SensorType                    string   `yaml:"SensorType" json:"SensorType"`
	ShutterPriority               string   `yaml:"ShutterPriority" json:"ShutterPriority"`
	Speaker                       string   `yaml:"Speaker" json:"Speaker"`
	StorageTypes                  string   `yaml:"StorageTypes" json:"StorageTypes"`
	SubjectSceneModes             string   `yaml:"SubjectSceneModes" json:"SubjectSceneModes"`
	TimelapseRecording            string   `yaml:"TimelapseRecording" json:"TimelapseRecording"`
	TouchScreen                   string   `yaml:"TouchScreen" json:"TouchScreen"`
	USB                           string   `yaml:"USB" json:"USB"`
	USBCharging                   string   `yaml:"USBCharging" json:"USBCharging"`
	UncompressedFormat            string   `yaml:"UncompressedFormat" json:"UncompressedFormat"`
	ViewfinderCoverage            string   `yaml:"ViewfinderCoverage" json:"ViewfinderCoverage"`
	ViewfinderMagnification       string   `yaml:"ViewfinderMagnification" json:"ViewfinderMagnification"`
	ViewfinderResolution          string   `yaml:"ViewfinderResolution" json:"ViewfinderResolution"`
	ViewfinderType                string   `yaml:"ViewfinderType" json:"ViewfinderType"`
	WBBracketing                  string   `yaml:"WBBracketing" json:"WBBracketing"`
	WeightIncBatteries            string   `yaml:"WeightIncBatteries" json:"WeightIncBatteries"`
	WhiteBalancePresets           string   `yaml:"WhiteBalancePresets" json:"WhiteBalancePresets"`
	Wireless                      string   `yaml:"Wireless" json:"Wireless"`
	WirelessNotes                 string   `yaml:"WirelessNotes" json:"WirelessNotes"`
}

// NewCameraSpecs returns a specs record with every list field initialized to
// an empty slice, so no field ever serializes as null.
func NewCameraSpecs() *CameraSpecs {
	s := &CameraSpecs{}
	v := reflect.ValueOf(s).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.Slice && f.IsNil() {
			f.Set(reflect.MakeSlice(f.Type(), 0, 0))
		}
	}
	return s
}

// SetField assigns a scalar value to the named field. It returns false if the
// field does not exist or is not string-typed.
func (s *CameraSpecs) SetField(name, value string) bool {
	f := reflect.ValueOf(s).Elem().FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.String {
		return false
	}
	f.SetString(value)
	return true
}

// SetListField assigns a list value to the named field. It returns false if
// the field does not exist or is not list-typed.
func (s *CameraSpecs) SetListField(name string, values []string) bool {
	f := reflect.ValueOf(s).Elem().FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.Slice {
		return false
	}
	f.Set(reflect.ValueOf(values))
	return true
}

// Merge combines two specs records field by field: the primary value wins
// whenever it is non-empty, otherwise the secondary value is taken. Values are
// never concatenated or deduplicated across the two sources.
func Merge(primary, secondary *CameraSpecs) *CameraSpecs {
	merged := NewCameraSpecs()
	mv := reflect.ValueOf(merged).Elem()
	pv := reflect.ValueOf(primary).Elem()
	sv := reflect.ValueOf(secondary).Elem()

	for i := 0; i < mv.NumField(); i++ {
		p := pv.Field(i)
		if p.Len() > 0 {
			mv.Field(i).Set(p)
			continue
		}
		if s := sv.Field(i); s.Len() > 0 {
			mv.Field(i).Set(s)
		}
	}
	return merged
}
