package xs

// C5G7 returns the seven-group benchmark library with fuel, moderator, a black
// absorber and a near-vacuum void.
func C5G7() *Library {
	lib := NewLibrary("C5G7")
	zero := func() []float64 { return make([]float64, 7) }
	zeroMatrix := func() [][]float64 {
		m := make([][]float64, 7)
		for i := range m {
			m[i] = zero()
		}
		return m
	}

	mustAdd(lib, MustMaterial("UO2",
		[]float64{8.0248e-03, 3.7174e-03, 2.6769e-02, 9.6236e-02, 3.0020e-02, 1.1126e-01, 2.8278e-01},
		[]float64{2.005998e-02, 2.027303e-03, 1.570599e-02, 4.518301e-02, 4.334208e-02, 2.020901e-01, 5.257105e-01},
		[]float64{7.21206e-03, 8.19301e-04, 6.45320e-03, 1.85648e-02, 1.78084e-02, 8.30348e-02, 2.16004e-01},
		[]float64{5.8791e-01, 4.1176e-01, 3.3906e-04, 1.1761e-07, 0, 0, 0},
		[][]float64{
			{1.27537e-01, 0, 0, 0, 0, 0, 0},
			{4.23780e-02, 3.24456e-01, 0, 0, 0, 0, 0},
			{9.43740e-06, 1.63140e-03, 4.50940e-01, 0, 0, 0, 0},
			{5.51630e-09, 3.14270e-09, 2.67920e-03, 4.52565e-01, 1.25250e-04, 0, 0},
			{0, 0, 0, 5.56640e-03, 2.71401e-01, 1.29680e-03, 0},
			{0, 0, 0, 0, 1.02550e-02, 2.65802e-01, 8.54580e-03},
			{0, 0, 0, 0, 1.00210e-08, 1.68090e-02, 2.73080e-01},
		},
	))

	mustAdd(lib, MustMaterial("Moderator",
		[]float64{6.0105e-04, 1.5793e-05, 3.3716e-04, 1.9406e-03, 5.7416e-03, 1.5001e-02, 3.7239e-02},
		zero(), zero(), zero(),
		[][]float64{
			{4.44777e-02, 0, 0, 0, 0, 0, 0},
			{1.13400e-01, 2.82334e-01, 0, 0, 0, 0, 0},
			{7.23470e-04, 1.29940e-01, 3.45256e-01, 0, 0, 0, 0},
			{3.74990e-06, 6.23400e-04, 2.24570e-01, 9.10284e-02, 7.14370e-05, 0, 0},
			{5.31840e-08, 4.80020e-05, 1.69990e-02, 4.15510e-01, 1.39138e-01, 2.21570e-03, 0},
			{0, 7.44860e-06, 2.64430e-03, 6.37320e-02, 5.11820e-01, 6.99913e-01, 1.32440e-01},
			{0, 1.04550e-06, 5.03440e-04, 1.21390e-02, 6.12290e-02, 5.37320e-01, 2.48070e+00},
		},
	))

	black := zero()
	for g := range black {
		black[g] = 1.0e+07
	}
	mustAdd(lib, MustMaterial("Black", black, zero(), zero(), zero(), zeroMatrix()))

	// Real vacuum has a zero total cross section; keep a tiny absorption so
	// free-flight sampling stays finite.
	void := zero()
	for g := range void {
		void[g] = 1.0e-05
	}
	mustAdd(lib, MustMaterial("Void", void, zero(), zero(), zero(), zeroMatrix()))

	if err := lib.Alias("Control", "Black"); err != nil {
		panic(err)
	}
	return lib
}

func mustAdd(lib *Library, m *Material) {
	if _, err := lib.Add(m); err != nil {
		panic(err)
	}
}
