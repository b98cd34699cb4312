package kratos

const (
	testSessionID  = "8f0c6f47-7d0a-4d55-9d2c-3b1f5a3e9c11"
	testIdentityID = "2b7c1d5e-0a3f-4b8e-9c6d-7e1f2a3b4c5d"
)

// whoAmIBody is a complete whoami payload as the identity provider returns it.
const whoAmIBody = `{
  "id": "8f0c6f47-7d0a-4d55-9d2c-3b1f5a3e9c11",
  "active": true,
  "issued_at": "2024-03-01T10:00:00Z",
  "expires_at": "2024-03-02T10:00:00Z",
  "identity": {
    "id": "2b7c1d5e-0a3f-4b8e-9c6d-7e1f2a3b4c5d",
    "schema_id": "member",
    "traits": {
      "name": {"first": "Ola", "last": "Nordmann"},
      "email": "ola@example.com",
      "postal_address": {"street": "Karl Johans gate 1", "postal_code": "0154", "city": "Oslo"},
      "municipality": "Oslo",
      "country": "Norway"
    },
    "verifiable_addresses": [{"value": "ola@example.com", "verified": true}]
  }
}`
