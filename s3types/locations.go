package s3types

// Location is a named bucket location and the LocationConstraint it maps to.
// The empty constraint is the default (us-east-1) location.
type Location struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint"`
}

// Locations is the fixed set of bucket locations accepted by create-bucket.
var Locations = []Location{
	{Name: "DEFAULT", Constraint: ""},
	{Name: "EU", Constraint: "EU"},
	{Name: "EUCentral1", Constraint: "eu-central-1"},
	{Name: "USWest", Constraint: "us-west-1"},
	{Name: "USWest2", Constraint: "us-west-2"},
	{Name: "SAEast", Constraint: "sa-east-1"},
	{Name: "APNortheast", Constraint: "ap-northeast-1"},
	{Name: "APSoutheast", Constraint: "ap-southeast-1"},
	{Name: "APSoutheast2", Constraint: "ap-southeast-2"},
	{Name: "CNNorth1", Constraint: "cn-north-1"},
}

// Regions is the fixed set of S3 regions reported by the regions command.
var Regions = []string{
	"us-east-1",
	"us-east-2",
	"us-west-1",
	"us-west-2",
	"ca-central-1",
	"eu-west-1",
	"eu-west-2",
	"eu-west-3",
	"eu-central-1",
	"eu-north-1",
	"ap-northeast-1",
	"ap-northeast-2",
	"ap-south-1",
	"ap-southeast-1",
	"ap-southeast-2",
	"sa-east-1",
	"cn-north-1",
}

// DefaultRegion is used when Credentials.Region is empty.
const DefaultRegion = "us-east-1"
