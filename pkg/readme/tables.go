package readme

type badge struct {
	color string
	logo  string
	dark  bool // black logo on a light background
}

func (b badge) logoColor() string {
	if b.dark {
		return "black"
	}
	return "white"
}

var languageBadges = map[string]badge{
	"TypeScript": {color: "3178C6", logo: "typescript"},
	"JavaScript": {color: "F7DF1E", logo: "javascript", dark: true},
	"Python":     {color: "3776AB", logo: "python"},
	"Java":       {color: "ED8B00", logo: "openjdk"},
	"Go":         {color: "00ADD8", logo: "go"},
	"Ruby":       {color: "CC342D", logo: "ruby"},
	"PHP":        {color: "777BB4", logo: "php"},
	"Rust":       {color: "000000", logo: "rust"},
	"C#":         {color: "239120", logo: "csharp"},
	"C++":        {color: "00599C", logo: "cplusplus"},
	"C":          {color: "A8B9CC", logo: "c", dark: true},
	"Swift":      {color: "F05138", logo: "swift"},
	"Kotlin":     {color: "7F52FF", logo: "kotlin"},
	"Scala":      {color: "DC322F", logo: "scala"},
	"Dart":       {color: "0175C2", logo: "dart"},
	"Vue":        {color: "4FC08D", logo: "vuedotjs"},
	"Svelte":     {color: "FF3E00", logo: "svelte"},
}

type command struct {
	install string
	dev     string
}

// commands maps package managers, as reported by the analyzer, to their
// install and run commands.
var commands = map[string]command{
	"npm":                   {"npm install", "npm run dev"},
	"yarn":                  {"yarn install", "yarn dev"},
	"pnpm":                  {"pnpm install", "pnpm dev"},
	"pip":                   {"pip install -r requirements.txt", "python main.py"},
	"composer":              {"composer install", "php artisan serve"},
	"bundler":               {"bundle install", "bundle exec rails server"},
	"go modules":            {"go mod download", "go run ."},
	"cargo":                 {"cargo build", "cargo run"},
	"maven":                 {"mvn install", "mvn spring-boot:run"},
	"gradle":                {"./gradlew build", "./gradlew bootRun"},
	"pub":                   {"dart pub get", "dart run"},
	"swift package manager": {"swift package resolve", "swift run"},
}

var runtimes = map[string]string{
	"TypeScript": "Node.js (>= 18)",
	"JavaScript": "Node.js (>= 18)",
	"Python":     "Python (>= 3.8)",
	"Java":       "Java JDK (>= 17)",
	"Go":         "Go (>= 1.21)",
	"Ruby":       "Ruby (>= 3.0)",
	"PHP":        "PHP (>= 8.1)",
	"Rust":       "Rust (latest stable)",
	"C#":         ".NET SDK (>= 8.0)",
	"C++":        "C++ compiler (GCC/Clang)",
	"C":          "C compiler (GCC/Clang)",
	"Swift":      "Swift (>= 5.9)",
	"Kotlin":     "Kotlin / JDK (>= 17)",
	"Scala":      "Scala / JDK (>= 17)",
	"Dart":       "Dart SDK (>= 3.0)",
}

var runExamples = map[string]string{
	"TypeScript": "npx ts-node src/index.ts",
	"JavaScript": "node src/index.js",
	"Python":     "python main.py",
	"Java":       "javac Main.java && java Main",
	"Go":         "go run .",
	"Ruby":       "ruby main.rb",
	"PHP":        "php index.php",
	"Rust":       "cargo run",
	"C#":         "dotnet run",
	"Swift":      "swift run",
	"Dart":       "dart run",
}
