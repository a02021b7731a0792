package constants

import "time"

const DefaultCacheTTL = 30 * time.Second
const DefaultWriteAttempts = 3
const DefaultThrottleInterval = 100 * time.Millisecond

// hub endpoints, relative to the base address
const PathAccessories = "accessories"
const PathCharacteristics = "characteristics"

// service type codes
const TypeLightBulb = "43"
const TypeMicrophone = "112"
const TypeThermostat = "4A"
const TypeSwitch = "49"
const TypeOutlet = "47"
const TypeAccessoryInfo = "3E"

// characteristic permissions
const PermPairedWrite = "pw"

// attribute names with special handling
const AttributeName = "name"
const AttributeOn = "on"
const AttributeBrightness = "brightness"

// mDNS service type advertised by HAP bridges
const DiscoveryService = "_hap._tcp"
const DiscoveryDomain = "local."
