package hal

// Object class identifiers reported through SelectorClass. The class
// decides which wrapper variant the object package constructs for an
// object id.
const (
	ClassObject           FourCC = 'a'<<24 | 'o'<<16 | 'b'<<8 | 'j'
	ClassSystem           FourCC = 'a'<<24 | 's'<<16 | 'y'<<8 | 's'
	ClassPlugIn           FourCC = 'a'<<24 | 'p'<<16 | 'l'<<8 | 'g'
	ClassTransportManager FourCC = 't'<<24 | 'r'<<16 | 'p'<<8 | 'm'
	ClassBox              FourCC = 'a'<<24 | 'b'<<16 | 'o'<<8 | 'x'
	ClassDevice           FourCC = 'a'<<24 | 'd'<<16 | 'e'<<8 | 'v'
	ClassAggregateDevice  FourCC = 'a'<<24 | 'a'<<16 | 'g'<<8 | 'g'
	ClassSubDevice        FourCC = 'a'<<24 | 's'<<16 | 'u'<<8 | 'b'
	ClassClockDevice      FourCC = 'a'<<24 | 'c'<<16 | 'l'<<8 | 'k'
	ClassStream           FourCC = 'a'<<24 | 's'<<16 | 't'<<8 | 'r'

	ClassControl         FourCC = 'a'<<24 | 'c'<<16 | 't'<<8 | 'l'
	ClassLevelControl    FourCC = 'l'<<24 | 'e'<<16 | 'v'<<8 | 'l'
	ClassBooleanControl  FourCC = 't'<<24 | 'o'<<16 | 'g'<<8 | 'l'
	ClassSelectorControl FourCC = 's'<<24 | 'l'<<16 | 'c'<<8 | 't'
	ClassVolumeControl   FourCC = 'v'<<24 | 'l'<<16 | 'm'<<8 | 'e'
	ClassMuteControl     FourCC = 'm'<<24 | 'u'<<16 | 't'<<8 | 'e'
	ClassSoloControl     FourCC = 's'<<24 | 'o'<<16 | 'l'<<8 | 'o'
	ClassJackControl     FourCC = 'j'<<24 | 'a'<<16 | 'c'<<8 | 'k'
	ClassDataSourceCtl   FourCC = 'd'<<24 | 's'<<16 | 'r'<<8 | 'c'
	ClassClockSourceCtl  FourCC = 'c'<<24 | 'l'<<16 | 'c'<<8 | 'k'
)

// Selectors common to every object.
const (
	SelectorBaseClass    FourCC = 'b'<<24 | 'c'<<16 | 'l'<<8 | 's'
	SelectorClass        FourCC = 'c'<<24 | 'l'<<16 | 'a'<<8 | 's'
	SelectorOwner        FourCC = 's'<<24 | 't'<<16 | 'd'<<8 | 'v'
	SelectorName         FourCC = 'l'<<24 | 'n'<<16 | 'a'<<8 | 'm'
	SelectorManufacturer FourCC = 'l'<<24 | 'm'<<16 | 'a'<<8 | 'k'
	SelectorElementName  FourCC = 'l'<<24 | 'c'<<16 | 'h'<<8 | 'n'
	SelectorOwnedObjects FourCC = 'o'<<24 | 'w'<<16 | 'n'<<8 | 'd'
	SelectorIdentify     FourCC = 'i'<<24 | 'd'<<16 | 'e'<<8 | 'n'
	SelectorSerialNumber FourCC = 's'<<24 | 'n'<<16 | 'u'<<8 | 'm'
	SelectorFirmwareVer  FourCC = 'f'<<24 | 'w'<<16 | 'v'<<8 | 'n'
)

// Selectors of the system object.
const (
	SelectorDevices             FourCC = 'd'<<24 | 'e'<<16 | 'v'<<8 | '#'
	SelectorDefaultInputDevice  FourCC = 'd'<<24 | 'I'<<16 | 'n'<<8 | ' '
	SelectorDefaultOutputDevice FourCC = 'd'<<24 | 'O'<<16 | 'u'<<8 | 't'
	SelectorDefaultSystemDevice FourCC = 's'<<24 | 'O'<<16 | 'u'<<8 | 't'
	SelectorTranslateUIDToDev   FourCC = 'u'<<24 | 'i'<<16 | 'd'<<8 | 'd'
	SelectorPlugInList          FourCC = 'p'<<24 | 'l'<<16 | 'g'<<8 | '#'
	SelectorBoxList             FourCC = 'b'<<24 | 'o'<<16 | 'x'<<8 | '#'
	SelectorClockDeviceList     FourCC = 'c'<<24 | 'l'<<16 | 'k'<<8 | '#'
)

// Selectors of devices.
const (
	SelectorDeviceUID          FourCC = 'u'<<24 | 'i'<<16 | 'd'<<8 | ' '
	SelectorModelUID           FourCC = 'm'<<24 | 'u'<<16 | 'i'<<8 | 'd'
	SelectorTransportType      FourCC = 't'<<24 | 'r'<<16 | 'a'<<8 | 'n'
	SelectorDeviceIsAlive      FourCC = 'l'<<24 | 'i'<<16 | 'v'<<8 | 'n'
	SelectorDeviceIsRunning    FourCC = 'g'<<24 | 'o'<<16 | 'i'<<8 | 'n'
	SelectorNominalSampleRate  FourCC = 'n'<<24 | 's'<<16 | 'r'<<8 | 't'
	SelectorAvailableRates     FourCC = 'n'<<24 | 's'<<16 | 'r'<<8 | '#'
	SelectorStreams            FourCC = 's'<<24 | 't'<<16 | 'm'<<8 | '#'
	SelectorLatency            FourCC = 'l'<<24 | 't'<<16 | 'n'<<8 | 'c'
	SelectorSafetyOffset       FourCC = 's'<<24 | 'a'<<16 | 'f'<<8 | 't'
	SelectorBufferFrameSize    FourCC = 'f'<<24 | 's'<<16 | 'i'<<8 | 'z'
	SelectorBufferFrameSizeRng FourCC = 'f'<<24 | 's'<<16 | 'z'<<8 | '#'
	SelectorHogMode            FourCC = 'h'<<24 | 'o'<<16 | 'g'<<8 | ' '
	SelectorMute               FourCC = 'm'<<24 | 'u'<<16 | 't'<<8 | 'e'
	SelectorVolumeScalar       FourCC = 'v'<<24 | 'o'<<16 | 'l'<<8 | 'm'
	SelectorVolumeDecibels     FourCC = 'v'<<24 | 'o'<<16 | 'l'<<8 | 'd'
	SelectorVolumeRangeDecibel FourCC = 'v'<<24 | 'd'<<16 | 'b'<<8 | '#'
	SelectorDataSource         FourCC = 's'<<24 | 's'<<16 | 'r'<<8 | 'c'
	SelectorDataSources        FourCC = 's'<<24 | 's'<<16 | 'c'<<8 | '#'
	SelectorDataSourceNameCF   FourCC = 'l'<<24 | 's'<<16 | 'c'<<8 | 'n'
	SelectorClockSource        FourCC = 'c'<<24 | 's'<<16 | 'r'<<8 | 'c'
	SelectorPreferredChannels  FourCC = 'd'<<24 | 'c'<<16 | 'h'<<8 | '2'
)

// Selectors of streams.
const (
	SelectorStreamIsActive        FourCC = 's'<<24 | 'a'<<16 | 'c'<<8 | 't'
	SelectorStreamDirection       FourCC = 's'<<24 | 'd'<<16 | 'i'<<8 | 'r'
	SelectorStreamTerminalType    FourCC = 't'<<24 | 'e'<<16 | 'r'<<8 | 'm'
	SelectorStreamStartingChannel FourCC = 's'<<24 | 'c'<<16 | 'h'<<8 | 'n'
	SelectorStreamVirtualFormat   FourCC = 's'<<24 | 'f'<<16 | 'm'<<8 | 't'
	SelectorStreamPhysicalFormat  FourCC = 'p'<<24 | 'f'<<16 | 't'<<8 | ' '
	SelectorStreamAvailVirtual    FourCC = 's'<<24 | 'f'<<16 | 'm'<<8 | 'a'
	SelectorStreamAvailPhysical   FourCC = 'p'<<24 | 'f'<<16 | 't'<<8 | 'a'
)

// Selectors of controls.
const (
	SelectorControlScope   FourCC = 'c'<<24 | 's'<<16 | 'c'<<8 | 'p'
	SelectorControlElement FourCC = 'c'<<24 | 'e'<<16 | 'l'<<8 | 'm'

	SelectorLevelScalar       FourCC = 'l'<<24 | 'c'<<16 | 's'<<8 | 'v'
	SelectorLevelDecibels     FourCC = 'l'<<24 | 'c'<<16 | 'd'<<8 | 'v'
	SelectorLevelDecibelRange FourCC = 'l'<<24 | 'c'<<16 | 'd'<<8 | 'r'
	SelectorLevelScalarToDB   FourCC = 'l'<<24 | 'c'<<16 | 's'<<8 | 'd'
	SelectorLevelDBToScalar   FourCC = 'l'<<24 | 'c'<<16 | 'd'<<8 | 's'

	SelectorBooleanValue FourCC = 'b'<<24 | 'c'<<16 | 'v'<<8 | 'l'

	SelectorSelectorCurrent   FourCC = 's'<<24 | 'c'<<16 | 'c'<<8 | 'i'
	SelectorSelectorAvailable FourCC = 's'<<24 | 'c'<<16 | 'a'<<8 | 'i'
	SelectorSelectorItemName  FourCC = 's'<<24 | 'c'<<16 | 'v'<<8 | 'n'
)

// Device transport types.
const (
	TransportBuiltIn   FourCC = 'b'<<24 | 'l'<<16 | 't'<<8 | 'n'
	TransportAggregate FourCC = 'g'<<24 | 'r'<<16 | 'u'<<8 | 'p'
	TransportVirtual   FourCC = 'v'<<24 | 'i'<<16 | 'r'<<8 | 't'
	TransportUSB       FourCC = 'u'<<24 | 's'<<16 | 'b'<<8 | ' '
	TransportFireWire  FourCC = '1'<<24 | '3'<<16 | '9'<<8 | '4'
	TransportBluetooth FourCC = 'b'<<24 | 'l'<<16 | 'u'<<8 | 'e'
	TransportHDMI      FourCC = 'h'<<24 | 'd'<<16 | 'm'<<8 | 'i'
	TransportDisplay   FourCC = 'd'<<24 | 'p'<<16 | 'r'<<8 | 't'
	TransportAirPlay   FourCC = 'a'<<24 | 'i'<<16 | 'r'<<8 | 'p'
	TransportThunder   FourCC = 't'<<24 | 'h'<<16 | 'u'<<8 | 'n'
	TransportNetwork   FourCC = 'n'<<24 | 'e'<<16 | 't'<<8 | ' '
)
