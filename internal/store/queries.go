package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Property queries.
const (
	queryListProperties = `
		SELECT id, title, location, availability, price, currency,
			COALESCE(description, ''), COALESCE(image_url, ''),
			bedrooms, bathrooms, area_sqft,
			created_at, updated_at
		FROM properties
		ORDER BY created_at DESC`

	queryUpsertProperty = `
		INSERT INTO properties (
			id, title, location, availability, price, currency,
			description, image_url, bedrooms, bathrooms, area_sqft,
			created_at, updated_at
		) VALUES (
			@id, @title, @location, @availability, @price, @currency,
			@description, @image_url, @bedrooms, @bathrooms, @area_sqft,
			now(), now()
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			location = EXCLUDED.location,
			availability = EXCLUDED.availability,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			area_sqft = EXCLUDED.area_sqft,
			updated_at = now()
		RETURNING created_at, updated_at`
)

// Trend analysis queries.
const (
	queryUpsertTrendAnalysis = `
		INSERT INTO trend_analyses (id, city, trend, analysis, generated_at)
		VALUES (@id, @city, @trend, @analysis, @generated_at)
		ON CONFLICT (city) DO UPDATE SET
			trend = EXCLUDED.trend,
			analysis = EXCLUDED.analysis,
			generated_at = EXCLUDED.generated_at`

	queryGetTrendAnalysis = `
		SELECT id, city, trend, analysis, generated_at
		FROM trend_analyses
		WHERE lower(city) = lower($1)`
)
