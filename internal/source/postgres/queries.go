package postgres

// Value columns come back as text so malformed source data reaches the
// normalizer instead of failing the scan.
const queryLoadCustomerRFM = `
SELECT
    recency,
    frequency,
    monetary,
    last_purchase_date,
    value_segment
FROM customer_rfm
ORDER BY id
`

const querySchemaCheck = `
SELECT id, recency, frequency, monetary, last_purchase_date, value_segment
FROM customer_rfm
LIMIT 0
`
