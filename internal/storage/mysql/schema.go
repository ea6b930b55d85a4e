package mysql

type kind int

const (
	kindInt kind = iota
	kindFloat
	kindString
	kindBool
	kindTime
	kindStrings  // JSON array of strings
	kindLocation // composite of locationColumns
	kindRef      // foreign key to another collection
)

type field struct {
	name   string
	column string
	kind   kind
	ref    string // kindRef target collection
	// filterOnly fields can be filtered and sorted on but are not part of the
	// default projection (dotted sub-fields of location).
	filterOnly bool
}

func (f field) columns() []string {
	if f.kind == kindLocation {
		return locationColumns
	}
	return []string{f.column}
}

func (f field) scalar() bool { return f.kind != kindLocation && f.kind != kindStrings }

var locationColumns = []string{"lon", "lat", "formatted_address", "street", "city", "state", "zipcode", "country"}

type schema struct {
	name   string
	table  string
	fields []field
	byName map[string]field
}

func newSchema(name, table string, fields ...field) *schema {
	s := &schema{name: name, table: table, fields: fields, byName: make(map[string]field, len(fields))}
	for _, f := range fields {
		s.byName[f.name] = f
	}
	return s
}

var idField = field{name: "id", column: "id", kind: kindInt}

var hotelSchema = newSchema("hotels", "hotels",
	idField,
	field{name: "name", column: "name", kind: kindString},
	field{name: "slug", column: "slug", kind: kindString},
	field{name: "description", column: "description", kind: kindString},
	field{name: "website", column: "website", kind: kindString},
	field{name: "phone", column: "phone", kind: kindString},
	field{name: "email", column: "email", kind: kindString},
	field{name: "location", kind: kindLocation},
	field{name: "location.formattedAddress", column: "formatted_address", kind: kindString, filterOnly: true},
	field{name: "location.street", column: "street", kind: kindString, filterOnly: true},
	field{name: "location.city", column: "city", kind: kindString, filterOnly: true},
	field{name: "location.state", column: "state", kind: kindString, filterOnly: true},
	field{name: "location.zipcode", column: "zipcode", kind: kindString, filterOnly: true},
	field{name: "location.country", column: "country", kind: kindString, filterOnly: true},
	field{name: "frontOfficeJobs", column: "front_office_jobs", kind: kindStrings},
	field{name: "managementJobs", column: "management_jobs", kind: kindStrings},
	field{name: "foodAndBeverageRoles", column: "food_and_beverage_roles", kind: kindStrings},
	field{name: "averageRating", column: "average_rating", kind: kindFloat},
	field{name: "averageCost", column: "average_cost", kind: kindFloat},
	field{name: "photo", column: "photo", kind: kindString},
	field{name: "businessFacilities", column: "business_facilities", kind: kindBool},
	field{name: "internet", column: "internet", kind: kindBool},
	field{name: "activities", column: "activities", kind: kindBool},
	field{name: "publicTransit", column: "public_transit", kind: kindBool},
	field{name: "outdoorPool", column: "outdoor_pool", kind: kindBool},
	field{name: "petFriendly", column: "pet_friendly", kind: kindBool},
	field{name: "garden", column: "garden", kind: kindBool},
	field{name: "createdAt", column: "created_at", kind: kindTime},
	field{name: "user", column: "user_id", kind: kindRef, ref: "users"},
)

var roomSchema = newSchema("rooms", "rooms",
	idField,
	field{name: "roomtype", column: "room_type", kind: kindString},
	field{name: "description", column: "description", kind: kindString},
	field{name: "area", column: "area", kind: kindFloat},
	field{name: "dailyrent", column: "daily_rent", kind: kindFloat},
	field{name: "star", column: "star", kind: kindString},
	field{name: "ac", column: "ac", kind: kindBool},
	field{name: "createdAt", column: "created_at", kind: kindTime},
	field{name: "hotel", column: "hotel_id", kind: kindRef, ref: "hotels"},
)

var reviewSchema = newSchema("reviews", "reviews",
	idField,
	field{name: "title", column: "title", kind: kindString},
	field{name: "text", column: "body", kind: kindString},
	field{name: "rating", column: "rating", kind: kindFloat},
	field{name: "createdAt", column: "created_at", kind: kindTime},
	field{name: "hotel", column: "hotel_id", kind: kindRef, ref: "hotels"},
	field{name: "user", column: "user_id", kind: kindRef, ref: "users"},
)

// Password hashes are deliberately absent.
var userSchema = newSchema("users", "users",
	idField,
	field{name: "name", column: "name", kind: kindString},
	field{name: "email", column: "email", kind: kindString},
	field{name: "role", column: "role", kind: kindString},
	field{name: "createdAt", column: "created_at", kind: kindTime},
)

var schemas = map[string]*schema{
	hotelSchema.name:  hotelSchema,
	roomSchema.name:   roomSchema,
	reviewSchema.name: reviewSchema,
	userSchema.name:   userSchema,
}
