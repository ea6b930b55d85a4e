package mysql

const hotelColumns = `
  id, name, slug, description, website, phone, email,
  lon, lat, formatted_address, street, city, state, zipcode, country,
  front_office_jobs, management_jobs, food_and_beverage_roles,
  average_rating, average_cost, photo,
  business_facilities, internet, activities, public_transit, outdoor_pool, pet_friendly, garden,
  created_at, user_id`

const insertHotelSQL = `
INSERT INTO hotels
  (name, slug, description, website, phone, email,
   lon, lat, formatted_address, street, city, state, zipcode, country,
   front_office_jobs, management_jobs, food_and_beverage_roles, photo,
   business_facilities, internet, activities, public_transit, outdoor_pool, pet_friendly, garden,
   created_at, user_id)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Derived columns (average_rating, average_cost) and photo are maintained by
// their own statements.
const updateHotelSQL = `
UPDATE hotels SET
  name = ?, slug = ?, description = ?, website = ?, phone = ?, email = ?,
  lon = ?, lat = ?, formatted_address = ?, street = ?, city = ?, state = ?, zipcode = ?, country = ?,
  front_office_jobs = ?, management_jobs = ?, food_and_beverage_roles = ?,
  business_facilities = ?, internet = ?, activities = ?, public_transit = ?,
  outdoor_pool = ?, pet_friendly = ?, garden = ?
WHERE id = ?
`

const getHotelSQL = `SELECT` + hotelColumns + ` FROM hotels WHERE id = ?`

// Rooms and reviews go with the hotel via ON DELETE CASCADE.
const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

const countHotelsByUserSQL = `SELECT COUNT(*) FROM hotels WHERE user_id = ?`

const setHotelPhotoSQL = `UPDATE hotels SET photo = ? WHERE id = ?`

// ST_Distance_Sphere with an earth radius of 3963 returns miles.
const hotelsWithinRadiusSQL = `SELECT` + hotelColumns + `
FROM hotels
WHERE lon IS NOT NULL AND lat IS NOT NULL
  AND ST_Distance_Sphere(POINT(lon, lat), POINT(?, ?), 3963) <= ?
ORDER BY created_at DESC, id ASC
`

// Average daily rent rounded up to the next ten; NULL without rooms.
const refreshAverageCostSQL = `
UPDATE hotels
SET average_cost = (SELECT CEIL(AVG(daily_rent) / 10) * 10 FROM rooms WHERE hotel_id = ?)
WHERE id = ?
`

const refreshAverageRatingSQL = `
UPDATE hotels
SET average_rating = (SELECT AVG(rating) FROM reviews WHERE hotel_id = ?)
WHERE id = ?
`

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

const roomColumns = `id, room_type, description, area, daily_rent, star, ac, created_at, hotel_id`

const listRoomsByHotelSQL = `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = ? ORDER BY created_at DESC, id ASC`

const getRoomSQL = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`

const insertRoomSQL = `
INSERT INTO rooms (room_type, description, area, daily_rent, star, ac, created_at, hotel_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE rooms SET room_type = ?, description = ?, area = ?, daily_rent = ?, star = ?, ac = ?
WHERE id = ?
`

const deleteRoomSQL = `DELETE FROM rooms WHERE id = ?`

// -----------------------------------------------------------------------------
// REVIEWS
// -----------------------------------------------------------------------------

const reviewColumns = `id, title, body, rating, created_at, hotel_id, user_id`

const listReviewsByHotelSQL = `SELECT ` + reviewColumns + ` FROM reviews WHERE hotel_id = ? ORDER BY created_at DESC, id ASC`

const getReviewSQL = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`

// Hotel columns are NULL when the hotel row is gone.
const getReviewViewSQL = `
SELECT r.id, r.title, r.body, r.rating, r.created_at, r.user_id,
       h.id, h.name, h.description
FROM reviews r
LEFT JOIN hotels h ON h.id = r.hotel_id
WHERE r.id = ?
`

const insertReviewSQL = `
INSERT INTO reviews (title, body, rating, created_at, hotel_id, user_id)
VALUES (?, ?, ?, ?, ?, ?)
`

const updateReviewSQL = `UPDATE reviews SET title = ?, body = ?, rating = ? WHERE id = ?`

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

const userColumns = `id, name, email, role, password_hash, created_at`

const getUserSQL = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

const getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = ?`

const insertUserSQL = `
INSERT INTO users (name, email, role, password_hash, created_at)
VALUES (?, ?, ?, ?, ?)
`

const updateUserSQL = `UPDATE users SET name = ?, email = ?, role = ? WHERE id = ?`

const updatePasswordSQL = `UPDATE users SET password_hash = ? WHERE id = ?`

const deleteUserSQL = `DELETE FROM users WHERE id = ?`

// Children first so foreign keys never block the purge.
var purgeSQL = []string{
	`DELETE FROM reviews`,
	`DELETE FROM rooms`,
	`DELETE FROM hotels`,
	`DELETE FROM users`,
}
