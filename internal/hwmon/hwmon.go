package hwmon

import (
	"fmt"
	"github.com/md14454/gosensors"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

var platformRegex = regexp.MustCompile(`.*/platform/([^/]+)/.*`)

// Chip is a hwmon device with its temperature and fan channels
type Chip struct {
	Name     string
	DType    string
	Modalias string
	Platform string
	Path     string

	Fans    []FanChannel
	Sensors []TempChannel
}

type TempChannel struct {
	Label string
	// Index is 1 based and counts temperature channels of the chip
	Index int
	Input string
	// Max and Min are in milli degree celsius, -1 if unknown
	Max   int
	Min   int
	Value float64
}

type FanChannel struct {
	Label string
	// Index is 1 based and counts fan channels of the chip
	Index     int
	RpmInput  string
	PwmOutput string
	PwmEnable string
	Min       int
	Max       int
	Rpm       float64
}

func GetChips() []*Chip {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*Chip

	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		identifier := computeIdentifier(chip)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		fansList := GetFans(chip)
		sensorsList := GetTempSensors(chip)

		if len(fansList) <= 0 && len(sensorsList) <= 0 {
			continue
		}

		list = append(list, &Chip{
			Name:     identifier,
			DType:    GetDeviceType(chip.Path),
			Modalias: GetDeviceModalias(chip.Path),
			Platform: platform,
			Path:     chip.Path,
			Fans:     fansList,
			Sensors:  sensorsList,
		})
	}

	return list
}

func GetTempSensors(chip gosensors.Chip) []TempChannel {
	var sensorList []TempChannel

	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		subfeatures := feature.GetSubFeatures()
		input, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput)
		if !ok {
			continue
		}

		max := -1
		if maxSubFeature, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempMax); ok {
			max = int(maxSubFeature.GetValue() * 1000)
		}
		min := -1
		if minSubFeature, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeTempMin); ok {
			min = int(minSubFeature.GetValue() * 1000)
		}

		sensorList = append(sensorList, TempChannel{
			Label: getLabel(chip.Path, input.Name),
			Index: len(sensorList) + 1,
			Input: filepath.Join(chip.Path, input.Name),
			Max:   max,
			Min:   min,
			Value: input.GetValue() * 1000,
		})
	}

	return sensorList
}

func GetFans(chip gosensors.Chip) []FanChannel {
	var fanList []FanChannel

	for _, feature := range chip.GetFeatures() {
		if feature.Type != gosensors.FeatureTypeFan {
			continue
		}

		subfeatures := feature.GetSubFeatures()
		input, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeFanInput)
		if !ok {
			continue
		}

		max := -1
		if maxSubFeature, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeFanMax); ok {
			max = int(maxSubFeature.GetValue())
		}
		min := -1
		if minSubFeature, ok := findSubFeature(subfeatures, gosensors.SubFeatureTypeFanMin); ok {
			min = int(minSubFeature.GetValue())
		}

		pwmOutput := filepath.Join(chip.Path, pwmFileName(input.Name))
		fanList = append(fanList, FanChannel{
			Label:     getLabel(chip.Path, input.Name),
			Index:     len(fanList) + 1,
			RpmInput:  filepath.Join(chip.Path, input.Name),
			PwmOutput: pwmOutput,
			PwmEnable: pwmOutput + "_enable",
			Min:       min,
			Max:       max,
			Rpm:       input.GetValue(),
		})
	}

	return fanList
}

// FindChip returns the first chip whose platform matches the given expression
func FindChip(chips []*Chip, platform string) (*Chip, error) {
	expression, err := regexp.Compile("(?i)" + platform)
	if err != nil {
		return nil, fmt.Errorf("invalid platform expression %s: %w", platform, err)
	}
	for _, chip := range chips {
		if expression.MatchString(chip.Platform) || expression.MatchString(chip.Name) {
			return chip, nil
		}
	}
	return nil, fmt.Errorf("no hwmon chip matched platform %s", platform)
}

// FindTempInput resolves the input file of a temperature channel
func FindTempInput(chips []*Chip, platform string, index int) (string, error) {
	chip, err := FindChip(chips, platform)
	if err != nil {
		return "", err
	}
	for _, sensor := range chip.Sensors {
		if sensor.Index == index {
			return sensor.Input, nil
		}
	}
	return "", fmt.Errorf("no hwmon temperature channel %d on platform %s", index, platform)
}

// FindFanChannel resolves the files of a fan channel
func FindFanChannel(chips []*Chip, platform string, index int) (FanChannel, error) {
	chip, err := FindChip(chips, platform)
	if err != nil {
		return FanChannel{}, err
	}
	for _, fan := range chip.Fans {
		if fan.Index == index {
			return fan, nil
		}
	}
	return FanChannel{}, fmt.Errorf("no hwmon fan channel %d on platform %s", index, platform)
}

func findSubFeature(subfeatures []gosensors.SubFeature, subFeatureType gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, subfeature := range subfeatures {
		if subfeature.Type == subFeatureType {
			return subfeature, true
		}
	}
	return gosensors.SubFeature{}, false
}

// pwmFileName maps fanN_input to pwmN
func pwmFileName(rpmInput string) string {
	channel := strings.TrimSuffix(strings.TrimPrefix(rpmInput, "fan"), "_input")
	return "pwm" + channel
}

func computeIdentifier(chip gosensors.Chip) string {
	name := chip.Prefix
	if len(name) <= 0 {
		name = GetDeviceName(chip.Path)
	}

	switch chip.Bus.Type {
	case BusTypeIsa:
		return fmt.Sprintf("%s-isa-%d%03x", name, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		return fmt.Sprintf("%s-pci-%d%03x", name, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		return fmt.Sprintf("%s-acpi-%d", name, chip.Bus.Nr)
	default:
		return name
	}
}

func findPlatform(devicePath string) string {
	match := platformRegex.FindStringSubmatch(devicePath)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
