package fuzztests

import "testing"

const maxSeedBytes = 64 << 10 // 64 KiB cap for the test corpus

var languageSeeds = []string{
	"x = 1\n",
	"for k, v in d.items():\n    print(d[k])\n",
	"for name, price in prices.items():\n    prices[name] = price * 2\n    total += prices[name]\n",
	"result = [d[k] for k, v in d.items()]\n",
	"out = {k: d[k] for k, v in d.items() if v}\n",
	"def f(a, b=1, *args, **kw):\n    return a if b else None\n",
	"class C(Base, meta=M):\n    @staticmethod\n    def m():\n        pass\n",
	"async def g():\n    async for k, v in d.items():\n        await h(d[k])\n",
	"try:\n    x = d[k]\nexcept KeyError as e:\n    raise\nfinally:\n    pass\n",
	"with open(p) as f, lock:\n    data = f.read()\n",
	"s = 'a' \"b\" f'{x}' r\"\\n\" b'raw'\n",
	"t = (1,)\nl = [1, 2, *rest]\nd = {**base, 'k': 1}\nst = {1, 2}\n",
	"m[a:b:c] = n[::2]\n",
	"value = lambda x, y=2: x ** y\n",
	"while (n := next(it)) is not None:\n    yield n\n",
	"if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n",
	"import os\nfrom sys import path as p\nglobal g\ndel x\nassert y, 'msg'\n",
	"x = (1 +\n     2)\ny = 1 + \\\n    2\n",
	"\tmixed indent\n",
	"def broken(:\n    pass\nx = d[k]\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add(clampSeed([]byte(seed)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
