package theirstack

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-discovery/internal/domain"
)

func normalize(t *testing.T, body string) Batch {
	t.Helper()
	return NewNormalizer(nil).Normalize([]byte(body))
}

func TestNormalize_Envelopes(t *testing.T) {
	record := `{"id":"a1","job_title":"Go Engineer","url":"https://jobs.example.com/a1"}`

	cases := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[` + record + `]`, 1},
		{"data key", `{"metadata":{"total":1},"data":[` + record + `]}`, 1},
		{"results key", `{"results":[` + record + `]}`, 1},
		{"jobs key", `{"jobs":[` + record + `]}`, 1},
		{"first present key wins even when empty", `{"data":[],"jobs":[` + record + `]}`, 0},
		{"null array", `{"data":null}`, 0},
		{"unknown envelope", `{"items":[` + record + `]}`, 0},
		{"scalar body", `"maintenance"`, 0},
		{"envelope key not an array", `{"data":{"id":"a1"}}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			batch := normalize(t, tc.body)
			assert.Len(t, batch.Offers, tc.want)
			assert.NotNil(t, batch.Offers)
		})
	}
}

func TestNormalize_ExampleScenario(t *testing.T) {
	t.Run("record without title keeps placeholder", func(t *testing.T) {
		batch := normalize(t, `{"data":[
			{"id":"1","job_title":"React Developer","company_name":"Acme","url":"https://a.example/1"},
			{"id":"2","job_title":"Frontend Engineer","company_name":"Beta","url":"https://a.example/2"},
			{"id":"3","company_name":"Gamma","url":"https://a.example/3"}
		]}`)

		require.Len(t, batch.Offers, 3)
		assert.Equal(t, 3, batch.Records)
		assert.Equal(t, defaultTitle, batch.Offers[2].Title)
	})

	t.Run("record without url is dropped", func(t *testing.T) {
		batch := normalize(t, `{"data":[
			{"id":"1","job_title":"React Developer","url":"https://a.example/1"},
			{"id":"2","job_title":"Frontend Engineer"},
			{"id":"3","job_title":"UI Engineer","url":"https://a.example/3"}
		]}`)

		require.Len(t, batch.Offers, 2)
		assert.Equal(t, 3, batch.Records, "dropped records still count towards the page size")
		assert.Equal(t, []string{"1", "3"}, []string{batch.Offers[0].ID, batch.Offers[1].ID})
	})
}

func TestNormalize_DefaultsEveryField(t *testing.T) {
	batch := normalize(t, `[{"url":"https://jobs.example.com/x"}]`)
	require.Len(t, batch.Offers, 1)

	offer := batch.Offers[0]
	assert.NotEmpty(t, offer.ID)
	assert.Equal(t, defaultTitle, offer.Title)
	assert.Equal(t, defaultCompany, offer.CompanyName)
	assert.Equal(t, defaultLocation, offer.Location)
	assert.Equal(t, defaultDescription, offer.Description)
	assert.Equal(t, domain.ModalityOnsite, offer.Modality)
	assert.NotNil(t, offer.Technologies)
	assert.Empty(t, offer.Technologies)

	encoded, err := json.Marshal(offer)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "null")
	assert.NotContains(t, string(encoded), `"salary"`)
	assert.NotContains(t, string(encoded), `"company_logo_url"`)
}

func TestNormalize_FieldFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		record string
		check  func(t *testing.T, o domain.JobOffer)
	}{
		{
			name:   "title from position",
			record: `{"position":"Backend Dev","url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "Backend Dev", o.Title) },
		},
		{
			name:   "job_title preferred over title",
			record: `{"job_title":"A","title":"B","url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "A", o.Title) },
		},
		{
			name:   "company object with logo",
			record: `{"company_object":{"name":"Acme","logo":"https://cdn.example/acme.png"},"url":"https://x.example/1"}`,
			check: func(t *testing.T, o domain.JobOffer) {
				assert.Equal(t, "Acme", o.CompanyName)
				assert.Equal(t, "https://cdn.example/acme.png", o.CompanyLogoURL)
			},
		},
		{
			name:   "company as plain string",
			record: `{"company":"Initech","url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "Initech", o.CompanyName) },
		},
		{
			name:   "location from job_locations strings",
			record: `{"job_locations":["Madrid, Spain","Remote"],"url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "Madrid, Spain", o.Location) },
		},
		{
			name:   "location from locations objects",
			record: `{"locations":[{"city":"Valencia"}],"url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "Valencia", o.Location) },
		},
		{
			name:   "location display name beats city",
			record: `{"locations":[{"display_name":"Bilbao, Basque Country","city":"Bilbao"}],"url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "Bilbao, Basque Country", o.Location) },
		},
		{
			name:   "short location last",
			record: `{"short_location":"Sevilla","url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "Sevilla", o.Location) },
		},
		{
			name:   "apply url chain skips unusable candidates",
			record: `{"url":"/relative","final_url":"javascript:alert(1)","source_url":"https://source.example/job"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "https://source.example/job", o.URL) },
		},
		{
			name:   "technologies keep provider order",
			record: `{"technology_slugs":["react","typescript","react","aws"],"url":"https://x.example/1"}`,
			check: func(t *testing.T, o domain.JobOffer) {
				assert.Equal(t, []string{"react", "typescript", "aws"}, o.Technologies)
			},
		},
		{
			name:   "technologies from tag objects",
			record: `{"tags":[{"name":"Go"},{"name":"Kubernetes"}],"url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, []string{"Go", "Kubernetes"}, o.Technologies) },
		},
		{
			name:   "numeric provider id",
			record: `{"id":123456789,"url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "123456789", o.ID) },
		},
		{
			name:   "numeric title falls back to next candidate",
			record: `{"job_title":123,"title":"Go Engineer","url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "Go Engineer", o.Title) },
		},
		{
			name:   "numeric title without alternatives gets the placeholder",
			record: `{"job_title":123,"url":"https://x.io/1"}`,
			check: func(t *testing.T, o domain.JobOffer) {
				assert.Equal(t, defaultTitle, o.Title)
				assert.Equal(t, "https://x.io/1", o.URL)
			},
		},
		{
			name:   "mistyped scalars use defaults",
			record: `{"company_name":{"x":1},"job_description":["a"],"salary_currency":7,"short_location":false,"url":"https://x.example/1"}`,
			check: func(t *testing.T, o domain.JobOffer) {
				assert.Equal(t, defaultCompany, o.CompanyName)
				assert.Equal(t, defaultDescription, o.Description)
				assert.Equal(t, defaultLocation, o.Location)
			},
		},
		{
			name:   "mistyped url skips to the next candidate",
			record: `{"url":42,"apply_url":"https://apply.example/7"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "https://apply.example/7", o.URL) },
		},
		{
			name:   "single location string instead of a list",
			record: `{"job_locations":"Madrid","url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, "Madrid", o.Location) },
		},
		{
			name:   "technology list with mistyped entries",
			record: `{"technology_slugs":[1,"go",null,{"name":"redis"}],"url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Equal(t, []string{"go", "redis"}, o.Technologies) },
		},
		{
			name:   "object id yields a synthetic id",
			record: `{"id":{"v":1},"job_title":"Go","url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.NotEmpty(t, o.ID) },
		},
		{
			name:   "relative logo is dropped",
			record: `{"company_object":{"name":"Acme","logo":"/logo.png"},"url":"https://x.example/1"}`,
			check:  func(t *testing.T, o domain.JobOffer) { assert.Empty(t, o.CompanyLogoURL) },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			batch := normalize(t, `[`+tc.record+`]`)
			require.Len(t, batch.Offers, 1)
			tc.check(t, batch.Offers[0])
		})
	}
}

func TestNormalize_Salary(t *testing.T) {
	cases := []struct {
		name   string
		fields string
		want   string
	}{
		{"annual range", `"min_annual_salary":45000,"max_annual_salary":60000,"salary_currency":"EUR"`, "45.000 - 60.000 EUR"},
		{"legacy range", `"job_salary_min":"30000","job_salary_max":"42000.4","job_salary_currency":"eur"`, "30.000 - 42.000 EUR"},
		{"min only", `"min_annual_salary":55000,"salary_currency":"USD"`, "55.000 USD"},
		{"no currency", `"salary_min":20000,"salary_max":25000`, "20.000 - 25.000"},
		{"equal bounds collapse", `"min_annual_salary":70000,"max_annual_salary":70000,"currency":"GBP"`, "70.000 GBP"},
		{"pre-formatted passthrough", `"salary_string":"30.000€ - 40.000€ Bruto/año"`, "30.000€ - 40.000€ Bruto/año"},
		{"numbers beat string", `"salary_string":"competitive","min_annual_salary":50000,"currency":"EUR"`, "50.000 EUR"},
		{"non numeric bounds fall back", `"min_annual_salary":"n/a","salary":"A convenir"`, "A convenir"},
		{"absent", ``, ""},
		{"out of range bounds are absent", `"min_annual_salary":1e300,"max_annual_salary":2e300,"salary_currency":"EUR"`, ""},
		{"infinite bound falls back", `"salary_min":"Infinity","salary_max":"Inf","salary":"A convenir"`, "A convenir"},
		{"one huge bound keeps the other", `"min_annual_salary":1e300,"max_annual_salary":60000,"salary_currency":"EUR"`, "60.000 EUR"},
		{"nan bound", `"job_salary_min":"NaN","job_salary_max":"40000","job_salary_currency":"EUR"`, "40.000 EUR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := `{"url":"https://x.example/1"`
			if tc.fields != "" {
				record += "," + tc.fields
			}
			batch := normalize(t, `[`+record+`}]`)
			require.Len(t, batch.Offers, 1)
			assert.Equal(t, tc.want, batch.Offers[0].Salary)
		})
	}
}

func TestInferModality(t *testing.T) {
	cases := []struct {
		name        string
		title, desc string
		remote      bool
		hybrid      bool
		want        domain.Modality
	}{
		{"remote in title", "Senior React Developer (Remote)", "", false, false, domain.ModalityRemote},
		{"spanish remote", "Desarrollador", "100% en remoto desde cualquier lugar", false, false, domain.ModalityRemote},
		{"teletrabajo", "Analista", "Teletrabajo parcial", false, false, domain.ModalityRemote},
		{"remote beats hybrid", "Hybrid role", "remote friendly", false, false, domain.ModalityRemote},
		{"hybrid accent", "Ingeniero", "Modelo HÍBRIDO en Madrid", false, false, domain.ModalityHybrid},
		{"hybrid beats onsite", "Backend", "hybrid, presencial 2 days", false, false, domain.ModalityHybrid},
		{"onsite", "Operario", "Trabajo presencial en Sevilla", false, false, domain.ModalityOnsite},
		{"flag fallback remote", "Go Engineer", "Build services", true, false, domain.ModalityRemote},
		{"flag fallback hybrid", "Go Engineer", "Build services", false, true, domain.ModalityHybrid},
		{"text beats flags", "Go Engineer", "presencial", true, false, domain.ModalityOnsite},
		{"default onsite", "Go Engineer", "Build services", false, false, domain.ModalityOnsite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inferModality(tc.title, tc.desc, tc.remote, tc.hybrid))
		})
	}
}

func TestNormalize_ModalityFromRecordFlags(t *testing.T) {
	batch := normalize(t, `[{"job_title":"Go Engineer","remote":true,"url":"https://x.example/1"},
		{"job_title":"Go Engineer","hybrid":"true","url":"https://x.example/2"}]`)
	require.Len(t, batch.Offers, 2)
	assert.Equal(t, domain.ModalityRemote, batch.Offers[0].Modality)
	assert.Equal(t, domain.ModalityHybrid, batch.Offers[1].Modality)
}

func TestNormalize_Description(t *testing.T) {
	t.Run("markup stripped", func(t *testing.T) {
		raw := `<h2>About</h2><p>We build <b>fast</b> APIs &amp; tools.</p><script>track()</script>`
		body, _ := json.Marshal([]map[string]string{{"job_description": raw, "url": "https://x.example/1"}})

		batch := NewNormalizer(nil).Normalize(body)
		require.Len(t, batch.Offers, 1)
		assert.Equal(t, "About We build fast APIs & tools.", batch.Offers[0].Description)
	})

	t.Run("markdown stripped", func(t *testing.T) {
		body, _ := json.Marshal([]map[string]string{{
			"description": "## Role\n**Senior** `Go` engineer for C# and snake_case fans",
			"url":         "https://x.example/1",
		}})

		batch := NewNormalizer(nil).Normalize(body)
		require.Len(t, batch.Offers, 1)
		assert.Equal(t, "Role Senior Go engineer for C# and snake_case fans", batch.Offers[0].Description)
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		body, _ := json.Marshal([]map[string]string{{"description": strings.Repeat("ñ", 250), "url": "https://x.example/1"}})

		batch := NewNormalizer(nil).Normalize(body)
		require.Len(t, batch.Offers, 1)
		desc := batch.Offers[0].Description
		assert.True(t, strings.HasSuffix(desc, "..."))
		assert.Equal(t, maxDescriptionRunes+3, utf8.RuneCountInString(desc))
	})

	t.Run("short text untouched", func(t *testing.T) {
		body, _ := json.Marshal([]map[string]string{{"description": strings.Repeat("a", maxDescriptionRunes), "url": "https://x.example/1"}})

		batch := NewNormalizer(nil).Normalize(body)
		require.Len(t, batch.Offers, 1)
		assert.Equal(t, strings.Repeat("a", maxDescriptionRunes), batch.Offers[0].Description)
	})
}

func TestNormalize_SkipsMalformedRecords(t *testing.T) {
	batch := normalize(t, `{"data":[
		{"id":"ok-1","job_title":"Go Engineer","url":"https://x.example/1"},
		"not an object",
		42,
		{"id":"ok-2","job_title":"Rust Engineer","url":"https://x.example/3"}
	]}`)

	require.Len(t, batch.Offers, 2)
	assert.Equal(t, 4, batch.Records)
	assert.Equal(t, "ok-1", batch.Offers[0].ID)
	assert.Equal(t, "ok-2", batch.Offers[1].ID)
}

func TestNormalize_SyntheticIDIsDeterministic(t *testing.T) {
	record := `{"job_title":"Go Engineer","company_name":"Acme","url":"https://x.example/1"}`
	first := normalize(t, `[`+record+`]`)
	second := normalize(t, `{"results":[`+record+`]}`)
	other := normalize(t, `[{"job_title":"Go Engineer","company_name":"Acme","url":"https://x.example/2"}]`)

	require.Len(t, first.Offers, 1)
	require.Len(t, second.Offers, 1)
	require.Len(t, other.Offers, 1)
	assert.Equal(t, first.Offers[0].ID, second.Offers[0].ID)
	assert.NotEqual(t, first.Offers[0].ID, other.Offers[0].ID)
}

func TestMalformedRecordError(t *testing.T) {
	cause := &json.SyntaxError{}
	err := &MalformedRecordError{Index: 3, Err: cause}
	assert.Contains(t, err.Error(), "record 3")
	assert.ErrorIs(t, err, cause)
}
