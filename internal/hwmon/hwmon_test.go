package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/md14454/gosensors"
	"github.com/stretchr/testify/assert"
)

func TestComputeIdentifierIsa(t *testing.T) {
	// GIVEN
	c := gosensors.Chip{
		Prefix: "ucsi_source_psy_USBC000:002",
		Addr:   0x0f1,
		Bus: gosensors.Bus{
			Type: BusTypeIsa,
			Nr:   1,
		},
		Path: "/sys/class/hwmon/hwmon7",
	}
	expected := "ucsi_source_psy_USBC000:002-isa-10f1"

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, expected, result)
}

func TestComputeIdentifierPci(t *testing.T) {
	// GIVEN
	c := gosensors.Chip{
		Prefix: "nvme",
		Addr:   0x5,
		Bus: gosensors.Bus{
			Type: BusTypePci,
			Nr:   1,
		},
		Path: "/sys/class/hwmon/hwmon4",
	}
	expected := "nvme-pci-1005"

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, expected, result)
}

func TestComputeIdentifierAcpi(t *testing.T) {
	// GIVEN
	c := gosensors.Chip{
		Prefix: "cros_ec",
		Bus: gosensors.Bus{
			Type: BusTypeAcpi,
			Nr:   1,
		},
		Path: "/sys/class/hwmon/hwmon4",
	}
	expected := fmt.Sprintf("%s-acpi-%d", c.Prefix, c.Bus.Nr)

	// WHEN
	result := computeIdentifier(c)

	// THEN
	assert.Equal(t, expected, result)
}

func TestFindPlatform(t *testing.T) {
	// GIVEN
	nvmePath := "/sys/devices/pci0000:00/0000:00:0e.0/pci10000:e0/10000:e0:06.0/10000:e1:00.0/nvme/nvme0/hwmon3"
	platformPath := "/sys/devices/platform/cros-ec-hwmon.1.auto/hwmon/hwmon5"

	// WHEN
	nvme := findPlatform(nvmePath)
	platform := findPlatform(platformPath)

	// THEN
	assert.Equal(t, "", nvme)
	assert.Equal(t, "cros-ec-hwmon.1.auto", platform)
}

func testChips() []*Chip {
	return []*Chip{
		{
			Name:     "nvme-pci-1005",
			Platform: "nvme-pci-1005",
			Sensors: []TempChannel{
				{Index: 1, Input: "/sys/class/hwmon/hwmon4/temp1_input"},
			},
		},
		{
			Name:     "cros_ec-isa-0000",
			Platform: "cros-ec-hwmon.1.auto",
			Sensors: []TempChannel{
				{Index: 1, Input: "/sys/class/hwmon/hwmon5/temp1_input"},
				{Index: 2, Input: "/sys/class/hwmon/hwmon5/temp2_input"},
			},
			Fans: []FanChannel{
				{Index: 1, RpmInput: "/sys/class/hwmon/hwmon5/fan1_input", PwmOutput: "/sys/class/hwmon/hwmon5/pwm1"},
			},
		},
	}
}

func TestFindTempInput(t *testing.T) {
	// GIVEN
	chips := testChips()

	// WHEN
	input, err := FindTempInput(chips, "cros-ec", 2)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/sys/class/hwmon/hwmon5/temp2_input", input)
}

func TestFindTempInput_NoMatchingIndex(t *testing.T) {
	// GIVEN
	chips := testChips()

	// WHEN
	_, err := FindTempInput(chips, "nvme", 3)

	// THEN
	assert.Error(t, err)
}

func TestFindFanChannel(t *testing.T) {
	// GIVEN
	chips := testChips()

	// WHEN
	fan, err := FindFanChannel(chips, "cros-ec", 1)
	_, missingErr := FindFanChannel(chips, "abc", 1)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/sys/class/hwmon/hwmon5/pwm1", fan.PwmOutput)
	assert.Error(t, missingErr)
}

func TestFindChip_InvalidExpression(t *testing.T) {
	// GIVEN
	chips := testChips()

	// WHEN
	_, err := FindChip(chips, "(")

	// THEN
	assert.Error(t, err)
}

func TestPwmFileName(t *testing.T) {
	assert.Equal(t, "pwm2", pwmFileName("fan2_input"))
}

func TestGetLabel(t *testing.T) {
	// GIVEN
	devicePath := t.TempDir()
	err := os.WriteFile(filepath.Join(devicePath, "temp1_label"), []byte("Package id 0\n"), 0644)
	assert.NoError(t, err)

	// WHEN
	withLabel := getLabel(devicePath, "temp1_input")
	withoutLabel := getLabel(devicePath, "temp2_input")

	// THEN
	assert.Equal(t, "Package id 0", withLabel)
	assert.Equal(t, "temp2", withoutLabel)
}

func TestGetDeviceName(t *testing.T) {
	// GIVEN
	devicePath := t.TempDir()
	err := os.WriteFile(filepath.Join(devicePath, "name"), []byte("cros_ec\n"), 0644)
	assert.NoError(t, err)

	// WHEN
	name := GetDeviceName(devicePath)

	// THEN
	assert.Equal(t, "cros_ec", name)
}
